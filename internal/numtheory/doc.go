// Package numtheory implements the number theory behind the classical half of
// Shor's algorithm: multiplicative order finding, the reduction from integer
// factoring to order finding, and trial-division primality.
//
// Order finding is exposed through the OrderFinder interface so that several
// strategies (repeated multiplication on machine words or on math/big, and a
// Carmichael-function oracle) can be run side by side and cross-checked.
package numtheory
