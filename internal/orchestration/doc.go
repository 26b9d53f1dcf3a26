// Package orchestration runs order finders and base sweeps concurrently and
// aggregates their results. It talks to the presentation layers only through
// the ProgressReporter and ResultPresenter interfaces.
package orchestration
