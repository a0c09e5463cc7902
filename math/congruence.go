package math

import (
	"math/big"
)

// CongruentModN reports whether a ≡ b (mod N), i.e. N divides (a - b)
func CongruentModN(a *big.Int, b *big.Int, N *big.Int) bool {
	aModN := new(big.Int).Mod(a, N)
	bModN := new(big.Int).Mod(b, N)

	return aModN.Cmp(bModN) == 0
}
