package keyfile

import (
	"fmt"

	"github.com/taurusgroup/pubkey/pkg/rsa"
)

func EncodeRSAPublicKey(pk *rsa.PublicKey) ([]byte, error) {
	return encode(TypeRSAPublic, fields{
		"n": pk.N().String(),
		"e": pk.E().String(),
	})
}

// EncodeRSAPrivateKey writes n, e, d and, when known, the primes p and q.
func EncodeRSAPrivateKey(sk *rsa.PrivateKey) ([]byte, error) {
	f := fields{
		"n": sk.N().String(),
		"e": sk.E().String(),
		"d": sk.D().String(),
	}
	if p, q := sk.Primes(); p != nil && q != nil {
		f["p"], f["q"] = p.String(), q.String()
	}
	return encode(TypeRSAPrivate, f)
}

func DecodeRSAPublicKey(data []byte) (*rsa.PublicKey, error) {
	f, err := decode(data, TypeRSAPublic)
	if err != nil {
		return nil, err
	}
	v, err := f.Ints("n", "e")
	if err != nil {
		return nil, err
	}
	return rsa.NewPublicKey(v[0], v[1])
}

// DecodeRSAPrivateKey uses the primes when present, so that decryption can use the CRT.
func DecodeRSAPrivateKey(data []byte) (*rsa.PrivateKey, error) {
	f, err := decode(data, TypeRSAPrivate)
	if err != nil {
		return nil, err
	}
	v, err := f.Ints("n", "e", "d")
	if err != nil {
		return nil, err
	}
	_, hasP := f["p"]
	_, hasQ := f["q"]
	if !hasP || !hasQ {
		return rsa.NewPrivateKey(v[0], v[1], v[2])
	}
	primes, err := f.Ints("p", "q")
	if err != nil {
		return nil, err
	}
	sk, err := rsa.NewPrivateKeyFromPrimes(primes[0], primes[1], v[1])
	if err != nil {
		return nil, err
	}
	if sk.N().Cmp(v[0]) != 0 {
		return nil, fmt.Errorf("%w: primes do not match n", ErrInvalidField)
	}
	return sk, nil
}
