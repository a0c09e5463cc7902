// PLEASE NOTE: this is textbook (unpadded) RSA. It exists only to manufacture demonstration inputs for the attack
// and must never be used to protect real data.

package commonmodulus

import (
	"math/big"

	"github.com/bastionzero/commonmodulus/internal/arith"
	"github.com/bastionzero/commonmodulus/math"
)

// a two-prime RSA modulus whose factorization is known, so exponentiation can use the CRT
type textbookKey struct {
	n      *big.Int
	lambda *big.Int
	mod    *arith.Modulus
}

func newTextbookKey(p, q *big.Int) *textbookKey {
	return &textbookKey{
		n:      primeProduct([]*big.Int{p, q}),
		lambda: carmichaelLambda([]*big.Int{p, q}),
		mod:    arith.ModulusFromFactors(p, q),
	}
}

// encrypt computes the raw ciphertext c = m^e (mod n)
func (k *textbookKey) encrypt(m, e *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(k.n) >= 0 {
		return nil, ErrMessageTooLarge
	}
	return k.mod.Exp(m, e), nil
}

// decrypt computes the raw plaintext m = c^d (mod n) where d = e⁻¹ (mod λ(n))
func (k *textbookKey) decrypt(c, e *big.Int) (*big.Int, error) {
	if c.Sign() < 0 || c.Cmp(k.n) >= 0 {
		return nil, ErrMessageTooLarge
	}

	d, err := math.ModInverse(e, k.lambda)
	if err != nil {
		return nil, err
	}

	return k.mod.Exp(c, d), nil
}
