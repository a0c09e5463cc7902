// Package arith provides modular exponentiation over saferith, accelerated by the Chinese remainder
// theorem when the factorization of the modulus is known.
package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus and enables faster modular exponentiation when
// the factorization is known.
// When n = p⋅q, xᵉ (mod n) can be computed with only two exponentiations
// with p and q respectively.
type Modulus struct {
	// represents modulus n
	*saferith.Modulus
	// n = p⋅q
	p, q *saferith.Modulus
	// pInv = p⁻¹ (mod q)
	pNat, pInv *saferith.Nat
}

// ModulusFromN creates a simple wrapper around a given modulus n.
func ModulusFromN(n *big.Int) *Modulus {
	return &Modulus{
		Modulus: saferith.ModulusFromNat(natFromBig(n)),
	}
}

// ModulusFromFactors creates the necessary cached values to accelerate
// exponentiation mod n = p⋅q. p and q must be distinct primes.
func ModulusFromFactors(p, q *big.Int) *Modulus {
	pNat, qNat := natFromBig(p), natFromBig(q)
	nNat := new(saferith.Nat).Mul(pNat, qNat, -1)
	pMod := saferith.ModulusFromNat(pNat)
	qMod := saferith.ModulusFromNat(qNat)
	return &Modulus{
		Modulus: saferith.ModulusFromNat(nNat),
		p:       pMod,
		q:       qMod,
		pNat:    pNat,
		pInv:    new(saferith.Nat).ModInverse(pNat, qMod),
	}
}

// Exp returns xᵉ (mod n) for e ≥ 0.
func (n *Modulus) Exp(x, e *big.Int) *big.Int {
	return n.exp(natFromBig(x), natFromBig(e)).Big()
}

// ExpI returns xᵉ (mod n) for an exponent of either sign.
// For e < 0, x must be invertible mod n.
func (n *Modulus) ExpI(x, e *big.Int) *big.Int {
	eInt := new(saferith.Int).SetBig(e, e.BitLen())
	if n.hasFactorization() {
		y := n.exp(natFromBig(x), eInt.Abs())
		inverted := new(saferith.Nat).ModInverse(y, n.Modulus)
		y.CondAssign(eInt.IsNegative(), inverted)
		return y.Big()
	}
	return new(saferith.Nat).ExpI(n.reduce(natFromBig(x)), eInt, n.Modulus).Big()
}

func (n *Modulus) exp(x, e *saferith.Nat) *saferith.Nat {
	if n.hasFactorization() {
		var xp, xq saferith.Nat
		xp.Exp(new(saferith.Nat).Mod(x, n.p), e, n.p) // x₁ = xᵉ (mod p₁)
		xq.Exp(new(saferith.Nat).Mod(x, n.q), e, n.q) // x₂ = xᵉ (mod p₂)
		// r = x₁ + p₁ ⋅ [p₁⁻¹ (mod p₂)] ⋅ [x₂ - x₁] (mod n)
		r := xq.ModSub(&xq, &xp, n.Modulus)
		r.ModMul(r, n.pInv, n.Modulus)
		r.ModMul(r, n.pNat, n.Modulus)
		r.ModAdd(r, &xp, n.Modulus)
		return r
	}
	return new(saferith.Nat).Exp(n.reduce(x), e, n.Modulus)
}

func (n *Modulus) reduce(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Mod(x, n.Modulus)
}

func (n *Modulus) hasFactorization() bool {
	return n.p != nil && n.q != nil && n.pNat != nil && n.pInv != nil
}

func natFromBig(x *big.Int) *saferith.Nat {
	return new(saferith.Nat).SetBig(x, x.BitLen())
}
