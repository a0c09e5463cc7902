package commonmodulus

import (
	"math/big"
)

// Recover runs the common modulus attack in both directions and returns the plaintext they agree on
//
// The forward recovery uses (c1, e1) as the positive term and inverts c2; the backward recovery swaps the pairs.
// Both derivations are mathematically equivalent, so disagreement means the caller supplied inputs that do
// not belong together, and is reported as a *ConsistencyError carrying both candidates.
func Recover(n, e1, e2, c1, c2 *big.Int) (*big.Int, error) {
	forward, err := RecoverPlaintext(c1, c2, e1, e2, n)
	if err != nil {
		return nil, err
	}

	backward, err := RecoverPlaintext(c2, c1, e2, e1, n)
	if err != nil {
		return nil, err
	}

	if forward.Cmp(backward) != 0 {
		return nil, &ConsistencyError{
			Forward:  forward,
			Backward: backward,
		}
	}

	return forward, nil
}
