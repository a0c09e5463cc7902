// Package casefile reads and writes common modulus attack inputs as JSON, CBOR or PEM files.
package casefile

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/bastionzero/commonmodulus"
)

// Format is a case file encoding
type Format string

const (
	JSON Format = "json"
	CBOR Format = "cbor"
	PEM  Format = "pem"
)

// FormatFromPath picks the encoding from the file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSON, nil
	case ".cbor":
		return CBOR, nil
	case ".pem":
		return PEM, nil
	default:
		return "", fmt.Errorf("unrecognized case file extension %q: use .json, .cbor or .pem", ext)
	}
}

// used exclusively as a placeholder for encoding-decoding
type jsonCase struct {
	N  *big.Int `json:"n"`
	E1 *big.Int `json:"e1"`
	E2 *big.Int `json:"e2"`
	C1 *big.Int `json:"ct1"`
	C2 *big.Int `json:"ct2"`
}

// used exclusively as a placeholder for encoding-decoding; integers are big-endian magnitudes
type cborCase struct {
	N  []byte `cbor:"1,keyasint"`
	E1 []byte `cbor:"2,keyasint"`
	E2 []byte `cbor:"3,keyasint"`
	C1 []byte `cbor:"4,keyasint"`
	C2 []byte `cbor:"5,keyasint"`
}

// Marshal encodes c in the given format
func Marshal(c *commonmodulus.Case, format Format) ([]byte, error) {
	switch format {
	case JSON:
		b, err := json.MarshalIndent(jsonCase{N: c.N, E1: c.E1, E2: c.E2, C1: c.C1, C2: c.C2}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to JSON-encode case: %w", err)
		}
		return append(b, '\n'), nil
	case CBOR:
		for _, v := range []*big.Int{c.N, c.E1, c.E2, c.C1, c.C2} {
			if v == nil || v.Sign() < 0 {
				return nil, fmt.Errorf("cannot CBOR-encode a case with missing or negative values")
			}
		}
		b, err := cbor.Marshal(cborCase{
			N:  c.N.Bytes(),
			E1: c.E1.Bytes(),
			E2: c.E2.Bytes(),
			C1: c.C1.Bytes(),
			C2: c.C2.Bytes(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to CBOR-encode case: %w", err)
		}
		return b, nil
	case PEM:
		s, err := c.EncodePEM()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("unrecognized case file format %q", format)
	}
}

// Unmarshal decodes a case in the given format. Every value must be present.
func Unmarshal(data []byte, format Format) (*commonmodulus.Case, error) {
	var c *commonmodulus.Case

	switch format {
	case JSON:
		var jc jsonCase
		if err := json.Unmarshal(data, &jc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON case: %w", err)
		}
		c = &commonmodulus.Case{N: jc.N, E1: jc.E1, E2: jc.E2, C1: jc.C1, C2: jc.C2}
	case CBOR:
		var cc cborCase
		if err := cbor.Unmarshal(data, &cc); err != nil {
			return nil, fmt.Errorf("failed to parse CBOR case: %w", err)
		}
		c = &commonmodulus.Case{
			N:  bytesToInt(cc.N),
			E1: bytesToInt(cc.E1),
			E2: bytesToInt(cc.E2),
			C1: bytesToInt(cc.C1),
			C2: bytesToInt(cc.C2),
		}
	case PEM:
		var err error
		if c, err = commonmodulus.DecodePEM(string(data)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unrecognized case file format %q", format)
	}

	if err := missing(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a case file, choosing the encoding from its extension
func Load(path string) (*commonmodulus.Case, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file: %w", err)
	}

	c, err := Unmarshal(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes a case file, choosing the encoding from its extension
func Save(path string, c *commonmodulus.Case) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(c, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write case file: %w", err)
	}
	return nil
}

// a nil slice means the key was absent
func bytesToInt(b []byte) *big.Int {
	if b == nil {
		return nil
	}
	return new(big.Int).SetBytes(b)
}

func missing(c *commonmodulus.Case) error {
	var names []string
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
			names = append(names, f.name)
		}
	}

	if len(names) > 0 {
		return fmt.Errorf("case is missing %s", strings.Join(names, ", "))
	}
	return nil
}
