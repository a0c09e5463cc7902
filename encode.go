package commonmodulus

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strconv"
	"unicode/utf8"
)

// OutputFormat selects how a recovered plaintext is rendered
type OutputFormat string

const (
	Decimal OutputFormat = "decimal" // base-10 integer
	Hex     OutputFormat = "hex"     // lowercase hex of the bytes
	Base64  OutputFormat = "base64"  // standard, padded base64 of the bytes
	Quoted  OutputFormat = "quoted"  // Go string literal of the bytes, non-ASCII escaped
	ASCII   OutputFormat = "ascii"   // bytes as 7-bit text
	UTF8    OutputFormat = "utf-8"   // bytes as UTF-8 text
	Raw     OutputFormat = "raw"     // bytes verbatim

	DefaultFormat = Quoted
)

// Formats returns every recognized output format in the order they are documented
func Formats() []OutputFormat {
	return []OutputFormat{Decimal, Hex, Base64, Quoted, ASCII, UTF8, Raw}
}

// ParseOutputFormat returns the OutputFormat named by s, or an *UnknownFormatError
func ParseOutputFormat(s string) (OutputFormat, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &UnknownFormatError{Format: s}
}

// PlaintextBytes returns the minimal big-endian encoding of m: ceil(bitlen(m) / 8) bytes, empty for zero
func PlaintextBytes(m *big.Int) []byte {
	return m.Bytes()
}

// Encode renders m in the given format
//
// Text formats return the text without a trailing newline. Raw returns exactly PlaintextBytes(m).
// ASCII and UTF8 fail with a *DecodeError when the bytes are not valid text in that encoding.
func Encode(m *big.Int, format OutputFormat) ([]byte, error) {
	b := PlaintextBytes(m)

	switch format {
	case Decimal:
		return []byte(m.Text(10)), nil
	case Hex:
		return []byte(hex.EncodeToString(b)), nil
	case Base64:
		return []byte(base64.StdEncoding.EncodeToString(b)), nil
	case Quoted:
		return []byte(strconv.QuoteToASCII(string(b))), nil
	case ASCII:
		for i, c := range b {
			if c >= utf8.RuneSelf {
				return nil, &DecodeError{Encoding: ASCII, Offset: i, Byte: c}
			}
		}
		return b, nil
	case UTF8:
		if !utf8.Valid(b) {
			offset := firstInvalidUTF8(b)
			return nil, &DecodeError{Encoding: UTF8, Offset: offset, Byte: b[offset]}
		}
		return b, nil
	case Raw:
		return b, nil
	default:
		return nil, &UnknownFormatError{Format: string(format)}
	}
}

// index of the first byte that does not start a valid UTF-8 sequence
func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
