package primes

// AllFactors returns every positive divisor of n in ascending order.
//
// Divisors are collected in pairs (i, n/i) for each i <= √n that divides n,
// so the cost is O(√n) divisions. AllFactors(0) returns nil since every
// positive integer divides zero.
func AllFactors(n uint64) []uint64 {
	if n == 0 {
		return nil
	}
	var small, large []uint64
	for i := uint64(1); i <= n/i; i++ {
		if n%i != 0 {
			continue
		}
		small = append(small, i)
		if j := n / i; j != i {
			large = append(large, j)
		}
	}
	// large was filled in descending order.
	for l, r := 0, len(large)-1; l < r; l, r = l+1, r-1 {
		large[l], large[r] = large[r], large[l]
	}
	return append(small, large...)
}

// PrimeFactors returns the prime factorization of n with multiplicity, in
// non-decreasing order. It divides out 2 first and then odd trial divisors;
// whatever remains above 1 is itself prime.
//
// PrimeFactors(0) and PrimeFactors(1) return nil.
func PrimeFactors(n uint64) []uint64 {
	if n < 2 {
		return nil
	}
	var factors []uint64
	for n%2 == 0 {
		factors = append(factors, 2)
		n /= 2
	}
	for i := uint64(3); i <= n/i; i += 2 {
		for n%i == 0 {
			factors = append(factors, i)
			n /= i
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// DistinctPrimeFactors returns the unique prime factors of n in ascending
// order, as displayed by the interactive checker.
func DistinctPrimeFactors(n uint64) []uint64 {
	factors := PrimeFactors(n)
	if len(factors) == 0 {
		return nil
	}
	out := factors[:1]
	for _, f := range factors[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}
