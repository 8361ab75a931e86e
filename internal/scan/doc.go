// Package scan enumerates the primes of an inclusive range by trial division
// and streams them, in discovery order, to a Sink in fixed-size batches.
//
// A run stops when the range is exhausted, when the optional prime cap is
// reached or when its context is canceled. On every exit path the records
// still buffered are flushed before Run returns, so a canceled run leaves a
// well-formed output holding every prime found so far.
package scan
