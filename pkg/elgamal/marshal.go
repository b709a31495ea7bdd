package elgamal

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
	P []byte `cbor:"1,keyasint"`
	G []byte `cbor:"2,keyasint"`
	Y []byte `cbor:"3,keyasint"`
}

type cborPrivateKey struct {
	cborPublicKey
	X []byte `cbor:"4,keyasint"`
}

type cborPair struct {
	A []byte `cbor:"1,keyasint"`
	B []byte `cbor:"2,keyasint"`
}

func (pk *PublicKey) toCBOR() cborPublicKey {
	return cborPublicKey{P: pk.p.Bytes(), G: pk.g.Bytes(), Y: pk.y.Bytes()}
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(pk.toCBOR())
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var x cborPublicKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("elgamal.PublicKey: %w", err)
	}
	decoded, err := NewPublicKey(
		new(big.Int).SetBytes(x.P),
		new(big.Int).SetBytes(x.G),
		new(big.Int).SetBytes(x.Y))
	if err != nil {
		return err
	}
	*pk = *decoded
	return nil
}

func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(cborPrivateKey{
		cborPublicKey: sk.PublicKey.toCBOR(),
		X:             sk.x.Bytes(),
	})
}

func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	var x cborPrivateKey
	if err := cbor.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("elgamal.PrivateKey: %w", err)
	}
	decoded, err := NewPrivateKey(
		new(big.Int).SetBytes(x.P),
		new(big.Int).SetBytes(x.G),
		new(big.Int).SetBytes(x.Y),
		new(big.Int).SetBytes(x.X))
	if err != nil {
		return err
	}
	*sk = *decoded
	return nil
}

func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	if ct.C1 == nil || ct.C2 == nil {
		return nil, ErrInvalidCiphertext
	}
	return cbor.Marshal(cborPair{A: ct.C1.Bytes(), B: ct.C2.Bytes()})
}

func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	var x cborPair
	if err := cbor.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("elgamal.Ciphertext: %w", err)
	}
	ct.C1 = new(big.Int).SetBytes(x.A)
	ct.C2 = new(big.Int).SetBytes(x.B)
	return nil
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	if sig.R == nil || sig.S == nil {
		return nil, fmt.Errorf("elgamal.Signature: nil component")
	}
	return cbor.Marshal(cborPair{A: sig.R.Bytes(), B: sig.S.Bytes()})
}

func (sig *Signature) UnmarshalBinary(data []byte) error {
	var x cborPair
	if err := cbor.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("elgamal.Signature: %w", err)
	}
	sig.R = new(big.Int).SetBytes(x.A)
	sig.S = new(big.Int).SetBytes(x.B)
	return nil
}
