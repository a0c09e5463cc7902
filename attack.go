package commonmodulus

import (
	"errors"
	"math/big"

	"github.com/bastionzero/commonmodulus/math"
)

var bigOne = big.NewInt(1)

// RecoverPlaintext recovers m from ca = m^ea (mod n) and cb = m^eb (mod n) without factoring n
//
// With Bézout coefficients ea*s1 + eb*s2 = 1 we have
//
//	ca^s1 * (cb⁻¹)^(-s2) ≡ m^(ea*s1) * m^(eb*s2) ≡ m (mod n)
//
// The call fails with an *IncoprimeExponentsError if gcd(ea, eb) ≠ 1 and with a *NonCoprimeCiphertextError
// if cb has no inverse mod n. No argument is modified.
func RecoverPlaintext(ca, cb, ea, eb, n *big.Int) (*big.Int, error) {
	if err := validate(ca, cb, ea, eb, n); err != nil {
		return nil, err
	}

	// exponents must be coprime before any inverse is attempted
	g := new(big.Int).GCD(nil, nil, ea, eb)
	if g.Cmp(bigOne) != 0 {
		return nil, &IncoprimeExponentsError{
			E1:  new(big.Int).Set(ea),
			E2:  new(big.Int).Set(eb),
			GCD: g,
		}
	}

	// s1 <- ea⁻¹ mod eb
	s1, err := math.ModInverse(ea, eb)
	if err != nil {
		return nil, err
	}

	// s2 <- (1 - ea*s1) / eb, exact because ea*s1 ≡ 1 (mod eb); usually negative
	s2 := new(big.Int).Mul(ea, s1)
	s2.Sub(bigOne, s2)
	s2.Quo(s2, eb)

	cbInverse, err := math.ModInverse(cb, n)
	if err != nil {
		var noInverse *math.NoInverseError
		if errors.As(err, &noInverse) {
			return nil, &NonCoprimeCiphertextError{
				Ciphertext: new(big.Int).Set(cb),
				Modulus:    new(big.Int).Set(n),
				GCD:        noInverse.GCD,
				err:        err,
			}
		}
		return nil, err
	}

	// m1 <- ca^s1 (mod n)
	m1, err := math.PowMod(ca, s1, n)
	if err != nil {
		return nil, err
	}

	// m2 <- (cb⁻¹)^(-s2) (mod n); PowMod copes with either sign of -s2
	m2, err := math.PowMod(cbInverse, new(big.Int).Neg(s2), n)
	if err != nil {
		return nil, err
	}

	m := m1.Mul(m1, m2)
	return m.Mod(m, n), nil
}

// check the inputs are inside the domain of the attack
func validate(ca, cb, ea, eb, n *big.Int) error {
	if n.Cmp(bigOne) <= 0 {
		return &InvalidParameterError{Name: "modulus", Value: n, Reason: "must be greater than 1"}
	}

	for _, e := range []*big.Int{ea, eb} {
		if e.Sign() <= 0 {
			return &InvalidParameterError{Name: "exponent", Value: e, Reason: "must be at least 1"}
		}
	}

	for _, c := range []*big.Int{ca, cb} {
		if c.Sign() < 0 {
			return &InvalidParameterError{Name: "ciphertext", Value: c, Reason: "must not be negative"}
		}
	}

	return nil
}
