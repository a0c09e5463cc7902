/*
Package commonmodulus implements the RSA common modulus attack using Go's math/big library

# Overview

If one plaintext m is encrypted twice with textbook RSA under the same modulus n but two different public exponents
e1 and e2, and gcd(e1, e2) = 1, then anyone holding the two ciphertexts can recover m. Neither the private key nor the
factorization of n is needed. Finding this in the wild means a modulus has been shared between keys, which is a
misconfiguration regardless of whether any plaintext has actually been encrypted twice.

# How the attack works

Because the exponents are coprime, the extended Euclidean algorithm yields Bézout coefficients s1, s2 with

	e1*s1 + e2*s2 = 1

One of the two coefficients is negative, usually s2. Raising each ciphertext to its coefficient and multiplying gives

	c1^s1 * c2^s2 ≡ m^(e1*s1) * m^(e2*s2) ≡ m^(e1*s1 + e2*s2) ≡ m (mod n)

where the negative power is computed as a positive power of c2⁻¹ (mod n). This requires gcd(c2, n) = 1.

# Usage

	m, err := commonmodulus.Recover(n, e1, e2, c1, c2)
	if err != nil {
		// *IncoprimeExponentsError, *NonCoprimeCiphertextError, *ConsistencyError, ...
	}
	text, err := commonmodulus.Encode(m, commonmodulus.ASCII)

[Recover] runs the attack in both directions and rejects the result unless both agree. [RecoverPlaintext] runs a
single direction. The number theory underneath lives in the math subpackage.

Inputs can be bundled as a [Case], which has a PEM encoding; the internal casefile package adds JSON and CBOR files.
[NewDemoCase] and [GenerateDemoCase] manufacture cases from known primes for demonstrations and tests.

# Limitations

The attack is purely algebraic. It does not apply to padded (PKCS#1 v1.5, OAEP) ciphertexts or to exponents that
share a factor, and it never learns the factors of n.

# Sources

	[1] https://infosecwriteups.com/rsa-attacks-common-modulus-7bdb34f331a5
	[2] G. J. Simmons, "A weak privacy protocol using the RSA crypto algorithm", Cryptologia 7(2), 1983
*/
package commonmodulus
