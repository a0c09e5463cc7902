package math

import (
	"fmt"
	"math/big"
)

// PowMod returns base^exponent (mod modulus) for any sign of exponent
//
// If exponent ≥ 0 this is ordinary square-and-multiply exponentiation.
// If exponent < 0 the result is (base⁻¹)^|exponent| (mod modulus), which only exists when base and modulus
// are coprime; otherwise a *NoInverseError is returned.
func PowMod(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive, got %v", modulus)
	}

	b := new(big.Int).Mod(base, modulus)
	if exponent.Sign() >= 0 {
		return new(big.Int).Exp(b, exponent, modulus), nil
	}

	inv, err := ModInverse(b, modulus)
	if err != nil {
		return nil, err
	}

	positive := new(big.Int).Neg(exponent)
	return new(big.Int).Exp(inv, positive, modulus), nil
}
