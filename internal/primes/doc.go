// Package primes implements the deterministic primality predicate used by the
// range scanner and the divisor routines used by the interactive checker.
//
// All routines operate on uint64 and use exact integer arithmetic. The
// primality test is plain trial division over the 6k±1 wheel; it is not a
// probabilistic test and must stay that way so that scan output is
// reproducible bit for bit.
package primes
