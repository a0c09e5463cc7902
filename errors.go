package commonmodulus

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/bastionzero/commonmodulus/math"
)

// NoInverseError is returned when a modular inverse required by the attack does not exist
type NoInverseError = math.NoInverseError

var (
	// ErrPlaintextTooLong is returned when a demonstration plaintext does not fit below the modulus
	ErrPlaintextTooLong = errors.New("plaintext is too long for this modulus")

	// ErrMessageTooLarge is returned by textbook encryption and decryption when the input is not below the modulus
	ErrMessageTooLarge = errors.New("message is not smaller than the modulus")
)

// IncoprimeExponentsError is returned when the two public exponents share a factor, in which case
// no Bézout combination can isolate the plaintext
type IncoprimeExponentsError struct {
	E1, E2 *big.Int
	GCD    *big.Int
}

func (e *IncoprimeExponentsError) Error() string {
	return fmt.Sprintf("exponents %v and %v must be coprime: gcd is %v", e.E1, e.E2, e.GCD)
}

// NonCoprimeCiphertextError is returned when the ciphertext that has to be inverted shares a factor with the modulus
type NonCoprimeCiphertextError struct {
	Ciphertext *big.Int
	Modulus    *big.Int
	GCD        *big.Int

	err error
}

func (e *NonCoprimeCiphertextError) Error() string {
	return fmt.Sprintf("ciphertext %v and modulus %v must be coprime: gcd is %v", e.Ciphertext, e.Modulus, e.GCD)
}

func (e *NonCoprimeCiphertextError) Unwrap() error {
	return e.err
}

// ConsistencyError is returned when recovering with the two ciphertexts in either order produces different plaintexts.
// It means the inputs do not describe one plaintext encrypted twice under one modulus.
type ConsistencyError struct {
	Forward  *big.Int // recovered from (c1, e1), (c2, e2)
	Backward *big.Int // recovered from (c2, e2), (c1, e1)
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("decrypted messages must be the same: forward recovery gave %v, backward recovery gave %v", e.Forward, e.Backward)
}

// UnknownFormatError is returned for an output format name that is not recognized
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q: must be one of %v", e.Format, Formats())
}

// DecodeError is returned when the recovered bytes are not valid text under the requested encoding
type DecodeError struct {
	Encoding OutputFormat
	Offset   int  // index of the first offending byte
	Byte     byte // value of the first offending byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode plaintext as %s: invalid byte 0x%02x at offset %d", e.Encoding, e.Byte, e.Offset)
}

// InvalidParameterError is returned for inputs outside the domain of the attack, such as a modulus ≤ 1
type InvalidParameterError struct {
	Name   string
	Value  *big.Int
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Name, e.Value, e.Reason)
}
