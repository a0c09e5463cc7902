package commonmodulus

import (
	"fmt"
	"math/big"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func toyCase() *Case {
	return &Case{
		N:  big.NewInt(143),
		E1: big.NewInt(7),
		E2: big.NewInt(11),
		C1: big.NewInt(6),
		C2: big.NewInt(106),
	}
}

var _ = Describe("Cases", func() {

	It("Recovers its plaintext", func() {
		m, err := toyCase().Recover()
		Expect(err).To(BeNil(), fmt.Sprintf("failed to recover: %s", err))
		Expect(m.Int64()).To(Equal(int64(7)))
	})

	It("Refuses to run with a missing value", func() {
		c := toyCase()
		c.C2 = nil
		_, err := c.Recover()
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("ct2"))
	})

	It("Survives a PEM round trip", func() {
		encoded, err := toyCase().EncodePEM()
		Expect(err).To(BeNil(), fmt.Sprintf("failed to encode: %s", err))
		Expect(encoded).To(HavePrefix("-----BEGIN " + pemType + "-----"))

		decoded, err := DecodePEM(encoded)
		Expect(err).To(BeNil(), fmt.Sprintf("failed to decode: %s", err))
		Expect(decoded.N.Int64()).To(Equal(int64(143)))
		Expect(decoded.E1.Int64()).To(Equal(int64(7)))
		Expect(decoded.E2.Int64()).To(Equal(int64(11)))
		Expect(decoded.C1.Int64()).To(Equal(int64(6)))
		Expect(decoded.C2.Int64()).To(Equal(int64(106)))
	})

	When("Decoding a PEM block of another type", func() {
		It("Should fail", func() {
			encoded, err := toyCase().EncodePEM()
			Expect(err).To(BeNil())

			_, err = DecodePEM(strings.ReplaceAll(encoded, pemType, "RSA PUBLIC KEY"))
			Expect(err).NotTo(BeNil())
		})
	})

	It("Renders a command line for the attack", func() {
		line := toyCase().CommandLine("commonmodulus")
		Expect(line).To(Equal("commonmodulus --modulus 143 --e1 7 --ct1 6 --e2 11 --ct2 106 --outputformat ascii --quiet"))
	})
})
