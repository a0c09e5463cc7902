package commonmodulus

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Demonstration cases", func() {

	Context("The toy modulus", func() {
		It("Reproduces the known ciphertexts", func() {
			c, err := NewDemoCase(big.NewInt(11), big.NewInt(13), big.NewInt(7), big.NewInt(11), []byte{7})
			Expect(err).To(BeNil(), fmt.Sprintf("failed to build case: %s", err))
			Expect(c.N.Int64()).To(Equal(int64(143)))
			Expect(c.C1.Int64()).To(Equal(int64(6)))
			Expect(c.C2.Int64()).To(Equal(int64(106)))
		})

		When("An exponent is not coprime to λ(n)", func() {
			It("Should fail", func() {
				// λ(143) = lcm(10, 12) = 60
				_, err := NewDemoCase(big.NewInt(11), big.NewInt(13), big.NewInt(9), big.NewInt(11), []byte{7})
				var invalid *InvalidParameterError
				Expect(errors.As(err, &invalid)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))
			})
		})

		When("An exponent is too large", func() {
			It("Should fail", func() {
				_, err := NewDemoCase(big.NewInt(11), big.NewInt(13), big.NewInt(7), big.NewInt(61), []byte{7})
				var invalid *InvalidParameterError
				Expect(errors.As(err, &invalid)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))
			})
		})

		When("The plaintext does not fit below the modulus", func() {
			It("Should fail", func() {
				_, err := NewDemoCase(big.NewInt(11), big.NewInt(13), big.NewInt(7), big.NewInt(11), []byte{1, 0})
				Expect(errors.Is(err, ErrPlaintextTooLong)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))
			})
		})

		When("The plaintext shares a factor with the modulus", func() {
			It("Should fail", func() {
				_, err := NewDemoCase(big.NewInt(11), big.NewInt(13), big.NewInt(7), big.NewInt(11), []byte{26})
				var invalid *InvalidParameterError
				Expect(errors.As(err, &invalid)).To(BeTrue(), fmt.Sprintf("unexpected error %v", err))
			})
		})
	})

	Context("The fixed 4096-bit demonstration modulus", func() {
		p, q := DemoPrimes()

		It("Has 2048-bit primes", func() {
			Expect(p.BitLen()).To(Equal(2048))
			Expect(q.BitLen()).To(Equal(2048))
			Expect(p.ProbablyPrime(20)).To(BeTrue())
			Expect(q.ProbablyPrime(20)).To(BeTrue())
		})

		It("Lets the attack recover the demonstration text", func() {
			c, err := NewDemoCase(p, q, big.NewInt(3), big.NewInt(65537), []byte(DemoPlaintext))
			Expect(err).To(BeNil(), fmt.Sprintf("failed to build case: %s", err))

			m, err := c.Recover()
			Expect(err).To(BeNil(), fmt.Sprintf("failed to recover: %s", err))

			text, err := Encode(m, ASCII)
			Expect(err).To(BeNil())
			Expect(string(text)).To(Equal(DemoPlaintext))
		})
	})

	Context("Generated moduli", func() {
		It("Produces a case the attack can recover", func() {
			c, err := GenerateDemoCase(rand.Reader, 1024, big.NewInt(3), big.NewInt(65537), []byte("TEST MESSAGE"))
			Expect(err).To(BeNil(), fmt.Sprintf("failed to generate case: %s", err))

			m, err := c.Recover()
			Expect(err).To(BeNil(), fmt.Sprintf("failed to recover: %s", err))
			Expect(PlaintextBytes(m)).To(Equal([]byte("TEST MESSAGE")))
		})

		It("Picks a random plaintext when none is given", func() {
			c, err := GenerateDemoCase(rand.Reader, 1024, big.NewInt(17), big.NewInt(65537), nil)
			Expect(err).To(BeNil(), fmt.Sprintf("failed to generate case: %s", err))

			_, err = c.Recover()
			Expect(err).To(BeNil(), fmt.Sprintf("failed to recover: %s", err))
		})
	})

	Context("Carmichael's function", func() {
		It("Is the lcm of p - 1 over the primes", func() {
			Expect(carmichaelLambda([]*big.Int{big.NewInt(11), big.NewInt(13)}).Int64()).To(Equal(int64(60)))
			Expect(carmichaelLambda([]*big.Int{big.NewInt(3), big.NewInt(5), big.NewInt(7)}).Int64()).To(Equal(int64(12)))
		})
	})
})
