package rsa

import (
	"encoding"
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

var (
	_ encoding.BinaryMarshaler   = (*PublicKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PublicKey)(nil)
	_ encoding.BinaryMarshaler   = (*PrivateKey)(nil)
	_ encoding.BinaryUnmarshaler = (*PrivateKey)(nil)
)

type cborPublicKey struct {
	N []byte `cbor:"1,keyasint"`
	E []byte `cbor:"2,keyasint"`
}

type cborPrivateKey struct {
	cborPublicKey
	D []byte `cbor:"3,keyasint"`
	P []byte `cbor:"4,keyasint,omitempty"`
	Q []byte `cbor:"5,keyasint,omitempty"`
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(cborPublicKey{N: pk.n.Bytes(), E: pk.e.Bytes()})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var x cborPublicKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("rsa.PublicKey: %w", err)
	}
	decoded, err := NewPublicKey(new(big.Int).SetBytes(x.N), new(big.Int).SetBytes(x.E))
	if err != nil {
		return err
	}
	*pk = *decoded
	return nil
}

// MarshalBinary encodes n, e, d and, when known, the primes p and q.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	x := cborPrivateKey{
		cborPublicKey: cborPublicKey{N: sk.n.Bytes(), E: sk.e.Bytes()},
		D:             sk.d.Bytes(),
	}
	if sk.p != nil && sk.q != nil {
		x.P, x.Q = sk.p.Bytes(), sk.q.Bytes()
	}
	return cbor.Marshal(x)
}

func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	var x cborPrivateKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("rsa.PrivateKey: %w", err)
	}
	n, e, d := new(big.Int).SetBytes(x.N), new(big.Int).SetBytes(x.E), new(big.Int).SetBytes(x.D)
	var (
		decoded *PrivateKey
		err     error
	)
	if len(x.P) > 0 && len(x.Q) > 0 {
		decoded, err = NewPrivateKeyFromPrimes(new(big.Int).SetBytes(x.P), new(big.Int).SetBytes(x.Q), e)
		if err == nil && decoded.n.Cmp(n) != 0 {
			err = fmt.Errorf("%w: primes do not match n", ErrInvalidKey)
		}
	} else {
		decoded, err = NewPrivateKey(n, e, d)
	}
	if err != nil {
		return err
	}
	*sk = *decoded
	return nil
}
