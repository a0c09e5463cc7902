package commonmodulus

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"
)

const maxModulusAttempts = 64

// fixed primes of the demonstration modulus, 2048 bits each
const (
	demoPrimeP = "E5B5B1EDC8DF0F307C2220151CFCBE31F69B15659A5D6FBA1E50F55A08B341218312D707CFC16ED86A1765F5AEAFA7E6A11C4431038914C76F0F398FE6BE031E289B220D13D9E02226C691D15BC6E1186EA18222D93F52A393BE1DA1A42853512419B5E6E304FD02E962A4C2D0ECDDB8F44AC094FACA8333AE94110A5B10DA539C24A96F08530E7699E3F705165CF14B7F90A2F32ED28D21615F91D7C808AC566D6EEEF6773450AB53542CDAC337C3124530CB16319752267C3422149D41543D8742586BAB578F4E06360745AE0BD8F0E800D1920DC1F3661287367A78967458383A82465C5D966E7299EFCF58BD860185F96655E1F8D300F6B096DFE883CF15"
	demoPrimeQ = "D9757338E9A6B363F227F3104EDEF6240C0CAF53B7D509F48870553C4A821F460469AE5616301B9CC30FBF4598A176B84284AF3A41D697A34CDC2C8D88A4C4BE82AE8DB5347511FE5B4DD915CA6A728CCFD0444CE38FC7190824059D86A9083C273581EA5AD1D5E3A8D8EC6858F291A5EADA98B0F5FD7C8E8CA6226657B8B7955796B22899B087714E293A86C78D42A7021754A6220F1D0A9588C280DD9AEC376E421D539F30A3053D95C7D70F24B471D14ECF282FA3E0B1CED2C405BA22404F3B75CD961A46097D7C098324FC47281D298734DA0DFCD8AF82E685657C926672727296147867EAEDFDEF89A79DE81FF104CF7D9157EF65A1BC333C98A7FED685"
)

// DemoPlaintext is the message encrypted by the demonstration script. It fits below the demonstration modulus.
const DemoPlaintext = `Alice was beginning to get very tired of sitting by her sister on the bank, and of having nothing to do: once or twice she had peeped into the book her sister was reading, but it had no pictures or conversations in it, "and what is the use of a book," thought Alice "without pictures or conversation?" So she was considering in her own mind (as well as she could, for the hot day made her feel very sleepy and stupid), whether the pleasure of making a daisy-chain would be worth the trouble of getting up`

// DemoPrimes returns the two fixed primes behind the 4096-bit demonstration modulus
func DemoPrimes() (p, q *big.Int) {
	p, _ = new(big.Int).SetString(demoPrimeP, 16)
	q, _ = new(big.Int).SetString(demoPrimeQ, 16)
	return p, q
}

// NewDemoCase encrypts plaintext twice under the modulus n = p⋅q, once with e1 and once with e2,
// and returns the resulting attack input
//
// Each exponent must be a valid RSA exponent for n: 1 < e < λ(n), e < n and gcd(e, λ(n)) = 1.
// The plaintext is read as a big-endian integer and must be smaller than n and coprime to it.
// Both ciphertexts are decrypted again with the matching private exponent before the case is returned.
func NewDemoCase(p, q, e1, e2 *big.Int, plaintext []byte) (*Case, error) {
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("primes must be distinct")
	}

	key := newTextbookKey(p, q)
	for _, e := range []*big.Int{e1, e2} {
		if err := validExponent(e, key); err != nil {
			return nil, err
		}
	}

	m := new(big.Int).SetBytes(plaintext)
	if m.Cmp(key.n) >= 0 {
		return nil, fmt.Errorf("%w: plaintext: %d bits, modulus: %d bits", ErrPlaintextTooLong, m.BitLen(), key.n.BitLen())
	}
	if !coprime(m, key.n) {
		return nil, &InvalidParameterError{Name: "plaintext", Value: m, Reason: "must be coprime to the modulus"}
	}

	c := &Case{
		N:  key.n,
		E1: new(big.Int).Set(e1),
		E2: new(big.Int).Set(e2),
	}

	var err error
	if c.C1, err = encryptAndVerify(key, m, e1); err != nil {
		return nil, err
	}
	if c.C2, err = encryptAndVerify(key, m, e2); err != nil {
		return nil, err
	}

	return c, nil
}

// GenerateDemoCase is like [NewDemoCase] but draws a fresh bits-sized modulus from random.
// Moduli are drawn until one has a λ(n) coprime to both exponents.
// A nil plaintext is replaced with a random integer coprime to the modulus.
func GenerateDemoCase(random io.Reader, bits int, e1, e2 *big.Int, plaintext []byte) (*Case, error) {
	if random == nil {
		random = rand.Reader
	}

	for _, e := range []*big.Int{e1, e2} {
		if e.Bit(0) == 0 {
			return nil, &InvalidParameterError{Name: "exponent", Value: e, Reason: "must be odd"}
		}
	}

	for i := 0; i < maxModulusAttempts; i++ {
		// rsa.GenerateKey only gives us well-formed primes; its own exponents are discarded
		priv, err := rsa.GenerateKey(random, bits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %d-bit modulus: %w", bits, err)
		}

		lambda := carmichaelLambda(priv.Primes)
		if !coprime(e1, lambda) || !coprime(e2, lambda) {
			continue
		}

		if plaintext == nil {
			m, err := randomPlaintext(random, priv.N)
			if err != nil {
				return nil, err
			}
			plaintext = m.Bytes()
		}

		return NewDemoCase(priv.Primes[0], priv.Primes[1], e1, e2, plaintext)
	}

	return nil, fmt.Errorf("failed to find a %d-bit modulus compatible with exponents %v and %v after %d attempts", bits, e1, e2, maxModulusAttempts)
}

func coprime(a, b *big.Int) bool {
	return new(big.Int).GCD(nil, nil, a, b).Cmp(bigOne) == 0
}

// returns a random number between 2 and n (exclusive) that is coprime to n
func randomPlaintext(random io.Reader, n *big.Int) (m *big.Int, err error) {
	for {
		m, err = rand.Int(random, n)
		if err != nil {
			return nil, fmt.Errorf("failed to produce random plaintext: %w", err)
		}

		// 0 and 1 encrypt to themselves
		if m.Cmp(bigOne) <= 0 {
			continue
		}

		if !coprime(m, n) {
			continue
		}

		return m, nil
	}
}

func validExponent(e *big.Int, key *textbookKey) error {
	switch {
	case e.Cmp(bigOne) <= 0:
		return &InvalidParameterError{Name: "exponent", Value: e, Reason: "must be greater than 1"}
	case e.Cmp(key.lambda) >= 0 || e.Cmp(key.n) >= 0:
		return &InvalidParameterError{Name: "exponent", Value: e, Reason: "must be smaller than λ(n) and n"}
	case !coprime(e, key.lambda):
		return &InvalidParameterError{Name: "exponent", Value: e, Reason: "must be coprime to λ(n)"}
	}
	return nil
}

// c <- m^e mod n, checked by decrypting c again
func encryptAndVerify(key *textbookKey, m, e *big.Int) (*big.Int, error) {
	c, err := key.encrypt(m, e)
	if err != nil {
		return nil, err
	}

	check, err := key.decrypt(c, e)
	if err != nil {
		return nil, err
	}
	if check.Cmp(m) != 0 {
		return nil, fmt.Errorf("ciphertext under exponent %v does not decrypt to the plaintext", e)
	}

	return c, nil
}
