// Package logging is the structured logger of shorcalc: a small Logger
// interface with typed fields, backed by zerolog.
package logging
