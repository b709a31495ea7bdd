package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// HashBytes is the size of the digest used for signatures and key derivation (SHA-256).
	HashBytes = 32

	// BitsElGamal is the default size of an ElGamal prime modulus.
	//
	// This is a demonstration size, real deployments need 2048 bits or more.
	BitsElGamal = 256

	// BitsRSAPrime is the default size of each RSA prime factor, so that N has 2 * BitsRSAPrime bits.
	BitsRSAPrime = 512
	BitsRSA      = 2 * BitsRSAPrime // = 1024

	// RSAPublicExponent is the fixed public exponent e.
	RSAPublicExponent = 65537

	// PrimalityIterations is the number of Miller-Rabin rounds used when checking candidates.
	//
	// 20 is the same number that Go uses internally.
	PrimalityIterations = 20

	// MaxPrimeIterations bounds the number of fresh candidates drawn before giving up on prime generation.
	MaxPrimeIterations = 100_000

	// MaxSampleIterations bounds rejection sampling loops that may legitimately fail.
	MaxSampleIterations = 255

	// KeyLength is the size in bytes of the symmetric key derived from an ECDH shared point (AES-128).
	KeyLength = 16

	// NonceLength is the AEAD nonce size in bytes.
	NonceLength = 12

	// TagLength is the AEAD authentication tag size in bytes.
	TagLength = 16
)
