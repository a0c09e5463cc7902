package commonmodulus

import (
	"math/big"
)

// calculate the Carmichael function λ(n) = lcm(p₁ - 1, ..., pₖ - 1) of a squarefree n from its prime factors
func carmichaelLambda(primes []*big.Int) *big.Int {
	// lambda <- p[0] - 1
	lambda := new(big.Int).Sub(primes[0], bigOne)

	// iteratively fold in any additional primes
	for i := 1; i < len(primes); i++ {
		// lambda[i] <- lcm(lambda[i-1], p[i] - 1)
		pim1 := new(big.Int).Sub(primes[i], bigOne)
		g := new(big.Int).GCD(nil, nil, lambda, pim1)
		lambda.Mul(lambda, pim1)
		lambda.Quo(lambda, g)
	}

	return lambda
}

// multiply a set of primes together
func primeProduct(primes []*big.Int) *big.Int {
	n := big.NewInt(1)
	for _, p := range primes {
		n.Mul(n, p)
	}
	return n
}
