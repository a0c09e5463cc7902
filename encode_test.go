package commonmodulus

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func mustEncode(m *big.Int, format OutputFormat) string {
	b, err := Encode(m, format)
	Expect(err).To(BeNil(), fmt.Sprintf("failed to encode %v as %s: %s", m, format, err))
	return string(b)
}

var _ = Describe("Output encoding", func() {
	seven := big.NewInt(7)
	text := new(big.Int).SetBytes([]byte("attack at dawn"))

	Context("The recovered plaintext 7", func() {
		It("Renders as hex", func() {
			Expect(mustEncode(seven, Hex)).To(Equal("07"))
		})

		It("Renders as decimal", func() {
			Expect(mustEncode(seven, Decimal)).To(Equal("7"))
		})

		It("Renders as base64", func() {
			Expect(mustEncode(seven, Base64)).To(Equal("Bw=="))
		})

		It("Renders as a quoted string with the control byte escaped", func() {
			Expect(mustEncode(seven, Quoted)).To(Equal(`"\a"`))
		})

		It("Renders as the single raw byte", func() {
			Expect([]byte(mustEncode(seven, Raw))).To(Equal([]byte{0x07}))
		})
	})

	Context("Minimal big-endian encoding", func() {
		It("Encodes zero as an empty sequence", func() {
			Expect(PlaintextBytes(big.NewInt(0))).To(BeEmpty())
			Expect(mustEncode(big.NewInt(0), Hex)).To(Equal(""))
			Expect(mustEncode(big.NewInt(0), Decimal)).To(Equal("0"))
		})

		It("Uses ceil(bitlen / 8) bytes", func() {
			for _, bits := range []uint{1, 7, 8, 9, 255, 256, 257, 4095} {
				m := new(big.Int).Lsh(bigOne, bits-1)
				Expect(PlaintextBytes(m)).To(HaveLen(int((bits+7)/8)), fmt.Sprintf("%d-bit value", bits))
			}
		})

		It("Emits exactly the minimal encoding in raw mode", func() {
			m := new(big.Int).SetBytes([]byte{0x01, 0x00, 0xff, 0x80})
			Expect(Encode(m, Raw)).To(Equal([]byte{0x01, 0x00, 0xff, 0x80}))
		})
	})

	Context("Round trips", func() {
		It("Recovers the bytes from hex", func() {
			decoded, err := hex.DecodeString(mustEncode(text, Hex))
			Expect(err).To(BeNil())
			Expect(decoded).To(Equal([]byte("attack at dawn")))
		})

		It("Recovers the bytes from base64", func() {
			decoded, err := base64.StdEncoding.DecodeString(mustEncode(text, Base64))
			Expect(err).To(BeNil())
			Expect(decoded).To(Equal([]byte("attack at dawn")))
		})

		It("Recovers the bytes from the quoted form", func() {
			m := new(big.Int).SetBytes([]byte{0x01, 'h', 0xff, '"', 0xe2, 0x82, 0xac})
			unquoted, err := strconv.Unquote(mustEncode(m, Quoted))
			Expect(err).To(BeNil())
			Expect([]byte(unquoted)).To(Equal(m.Bytes()))
		})
	})

	Context("Text encodings", func() {
		It("Decodes ASCII text", func() {
			Expect(mustEncode(text, ASCII)).To(Equal("attack at dawn"))
		})

		It("Decodes UTF-8 text", func() {
			m := new(big.Int).SetBytes([]byte("10 €"))
			Expect(mustEncode(m, UTF8)).To(Equal("10 €"))
		})

		When("A byte is outside 7-bit ASCII", func() {
			It("Should fail with a DecodeError", func() {
				m := new(big.Int).SetBytes([]byte("10 €"))
				_, err := Encode(m, ASCII)

				var decodeErr *DecodeError
				Expect(errors.As(err, &decodeErr)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))
				Expect(decodeErr.Offset).To(Equal(3))
				Expect(decodeErr.Byte).To(Equal(byte(0xe2)))
			})
		})

		When("The bytes are not valid UTF-8", func() {
			It("Should fail with a DecodeError", func() {
				m := new(big.Int).SetBytes([]byte{'o', 'k', 0xc3, 0x28})
				_, err := Encode(m, UTF8)

				var decodeErr *DecodeError
				Expect(errors.As(err, &decodeErr)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))
				Expect(decodeErr.Offset).To(Equal(2))
			})
		})
	})

	Context("Format names", func() {
		It("Parses every documented format", func() {
			for _, name := range []string{"decimal", "hex", "base64", "quoted", "ascii", "utf-8", "raw"} {
				f, err := ParseOutputFormat(name)
				Expect(err).To(BeNil())
				Expect(string(f)).To(Equal(name))
			}
		})

		It("Rejects an unknown format", func() {
			_, err := ParseOutputFormat("utf8")
			var unknown *UnknownFormatError
			Expect(errors.As(err, &unknown)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))

			_, err = Encode(seven, OutputFormat("binary"))
			Expect(errors.As(err, &unknown)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))
		})
	})
})
