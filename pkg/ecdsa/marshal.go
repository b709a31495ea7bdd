package ecdsa

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

type cborSignature struct {
	R []byte `cbor:"1,keyasint"`
	S []byte `cbor:"2,keyasint"`
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	if sig.R == nil || sig.S == nil {
		return nil, ErrInvalidSignature
	}
	return cbor.Marshal(cborSignature{R: sig.R.Bytes(), S: sig.S.Bytes()})
}

// UnmarshalBinary decodes a signature. Range checks are left to Verify.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	var x cborSignature
	if err := cbor.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	sig.R = new(big.Int).SetBytes(x.R)
	sig.S = new(big.Int).SetBytes(x.S)
	return nil
}
