/*
Package math holds the number theory the common modulus attack is built on: the extended
Euclidean algorithm, modular inverses, and modular exponentiation that accepts negative exponents.

Everything here operates on math/big values and never mutates its arguments.
*/
package math

import (
	"fmt"
	"math/big"
)

var bigOne = big.NewInt(1)

// NoInverseError is returned when A has no multiplicative inverse modulo M, which is the case exactly
// when gcd(A, M) ≠ 1
type NoInverseError struct {
	A   *big.Int
	M   *big.Int
	GCD *big.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("modular inverse of %v mod %v does not exist: gcd is %v", e.A, e.M, e.GCD)
}

// ExtendedGCD returns g = gcd(a, b) along with Bézout coefficients x, y such that a*x + b*y = g
//
// a must be non-negative and b positive. The remainder sequence is walked iteratively, so the
// cost is O(log(min(a, b))) big-integer divisions and no stack growth, regardless of operand size.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	// invariants: oldR = a*oldX + b*oldY and r = a*curX + b*curY
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldX, curX := big.NewInt(1), big.NewInt(0)
	oldY, curY := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		// (oldR, r) <- (r, oldR - q*r)
		q.Quo(oldR, r)
		tmp.Mul(q, r)
		oldR, r = r, oldR.Sub(oldR, tmp)

		// (oldX, curX) <- (curX, oldX - q*curX)
		tmp.Mul(q, curX)
		oldX, curX = curX, oldX.Sub(oldX, tmp)

		// (oldY, curY) <- (curY, oldY - q*curY)
		tmp.Mul(q, curY)
		oldY, curY = curY, oldY.Sub(oldY, tmp)
	}

	return oldR, oldX, oldY
}

// ModInverse returns x in [0, m) such that a*x ≡ 1 (mod m)
//
// m must be positive. a may be any integer; it is reduced mod m first.
// If gcd(a, m) ≠ 1 the inverse does not exist and a *NoInverseError is returned.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive, got %v", m)
	}

	aModM := new(big.Int).Mod(a, m)
	g, x, _ := ExtendedGCD(aModM, m)
	if g.Cmp(bigOne) != 0 {
		return nil, &NoInverseError{
			A:   new(big.Int).Set(a),
			M:   new(big.Int).Set(m),
			GCD: g,
		}
	}

	// x may be negative, bring it into [0, m)
	return x.Mod(x, m), nil
}
