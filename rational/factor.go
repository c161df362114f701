package rational

import "math/big"

// Factorize attempts to factor the positive integer n into the supplied
// prime basis (primes, in increasing order), counting every trial division
// against budget and stopping once budget trials have been spent. It returns the exponent of each basis prime and the
// unfactored remainder (1 if n factors completely over the basis).
//
// This mirrors monzo's "residual factoring policy" (spec §4.1): the caller
// is expected to charge its own gas for every trial division actually
// performed (reported via trials) and to treat budget exhaustion as a signal
// to promote to a real-valued fallback rather than as an error.
func Factorize(n *big.Int, primes []int64, budget int) (exponents []int64, remainder *big.Int, trials int) {
	rem := new(big.Int).Abs(n)
	exponents = make([]int64, len(primes))
	one := big.NewInt(1)
	for idx, p := range primes {
		if rem.Cmp(one) == 0 {
			break
		}
		bp := big.NewInt(p)
		for {
			if trials >= budget {
				return exponents, rem, trials
			}
			trials++
			q, r := new(big.Int).QuoRem(rem, bp, new(big.Int))
			if r.Sign() != 0 {
				break
			}
			rem = q
			exponents[idx]++
		}
	}
	return exponents, rem, trials
}

// IsPrime reports whether n is probably prime, using math/big's
// Miller-Rabin-backed ProbablyPrime. Nothing in this module calls it.
func IsPrime(n int64) bool {
	return big.NewInt(n).ProbablyPrime(20)
}

// Primes returns the first n primes starting at 2, by trial division against
// the primes already found. It builds the prime basis (bounded by
// numComponents, itself a small, user-configurable constant) and charges no
// gas.
func Primes(n int) []int64 {
	if n <= 0 {
		return nil
	}
	primes := make([]int64, 0, n)
	candidate := int64(2)
	for len(primes) < n {
		isP := true
		for _, p := range primes {
			if p*p > candidate {
				break
			}
			if candidate%p == 0 {
				isP = false
				break
			}
		}
		if isP {
			primes = append(primes, candidate)
		}
		candidate++
	}
	return primes
}
