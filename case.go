package commonmodulus

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"
)

const pemType = "RSA COMMON MODULUS CASE"

// A Case is one input to the common modulus attack: a single plaintext encrypted under (N, E1) and (N, E2)
type Case struct {
	N  *big.Int // shared modulus
	E1 *big.Int // first public exponent
	E2 *big.Int // second public exponent
	C1 *big.Int // ciphertext under E1
	C2 *big.Int // ciphertext under E2
}

// Recover runs the attack on the case, see [Recover]
func (c *Case) Recover() (*big.Int, error) {
	if err := c.complete(); err != nil {
		return nil, err
	}
	return Recover(c.N, c.E1, c.E2, c.C1, c.C2)
}

// CommandLine returns an invocation of program that recovers the case as ASCII text
func (c *Case) CommandLine(program string) string {
	return fmt.Sprintf("%s --modulus %v --e1 %v --ct1 %v --e2 %v --ct2 %v --outputformat ascii --quiet",
		program, c.N, c.E1, c.C1, c.E2, c.C2)
}

func (c *Case) complete() error {
	for _, f := range []struct {
		name  string
		value *big.Int
	}{
		{"n", c.N},
		{"e1", c.E1},
		{"e2", c.E2},
		{"ct1", c.C1},
		{"ct2", c.C2},
	} {
		if f.value == nil {
			return fmt.Errorf("case is missing %s", f.name)
		}
	}
	return nil
}

// used exclusively as a placeholder for encoding-decoding
type asn1Case struct {
	N  *big.Int
	E1 *big.Int
	E2 *big.Int
	C1 *big.Int
	C2 *big.Int
}

// EncodePEM returns a PEM encoding of the case
func (c *Case) EncodePEM() (string, error) {
	if err := c.complete(); err != nil {
		return "", err
	}

	b, err := asn1.Marshal(asn1Case{
		N:  c.N,
		E1: c.E1,
		E2: c.E2,
		C1: c.C1,
		C2: c.C2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to DER-encode: %s", err)
	}

	casePEM := new(bytes.Buffer)
	err = pem.Encode(casePEM, &pem.Block{
		Type:  pemType,
		Bytes: b,
	})
	if err != nil {
		return "", fmt.Errorf("failed to PEM-encode: %s", err)
	}

	return casePEM.String(), nil
}

// DecodePEM returns case data from a PEM encoding
func DecodePEM(encoded string) (*Case, error) {
	block, rest := pem.Decode([]byte(encoded))
	if block == nil || block.Type != pemType || len(bytes.TrimSpace(rest)) > 0 {
		return nil, fmt.Errorf("failed to decode PEM block containing a common modulus case")
	}

	var ac asn1Case
	rest, err := asn1.Unmarshal(block.Bytes, &ac)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal DER-encoded case: %s", err)
	} else if len(rest) > 0 {
		return nil, fmt.Errorf("trailing data after DER-encoded case")
	}

	return &Case{
		N:  ac.N,
		E1: ac.E1,
		E2: ac.E2,
		C1: ac.C1,
		C2: ac.C2,
	}, nil
}
