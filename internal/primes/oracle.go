package primes

// ─────────────────────────────────────────────────────────────────────────────
// Primality Oracle
// ─────────────────────────────────────────────────────────────────────────────

// WheelStart is the first divisor tested after 2 and 3 have been ruled out.
// Every later divisor has the form 6k-1 or 6k+1.
const WheelStart = 5

// WheelStep is the distance between consecutive 6k-1 divisors.
const WheelStep = 6

// IsPrime reports whether n is prime using trial division with 6k±1 wheel
// skipping.
//
// The loop tests i and i+2 for i = 5, 11, 17, ... while i*i <= n. The bound
// is written as i <= n/i so that it cannot overflow for n near MaxUint64.
//
// Parameters:
//   - n: The number to test.
//
// Returns:
//   - bool: true if n is prime.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 || n == 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	for i := uint64(WheelStart); i <= n/i; i += WheelStep {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// NextOdd returns n if it is odd, otherwise n+1. The scanner uses it to
// normalize the first candidate of a range.
func NextOdd(n uint64) uint64 {
	if n%2 == 0 {
		return n + 1
	}
	return n
}
