package keyfile

import (
	"github.com/taurusgroup/pubkey/pkg/elgamal"
)

func EncodeElGamalPublicKey(pk *elgamal.PublicKey) ([]byte, error) {
	return encode(TypeElGamalPublic, fields{
		"p": pk.P().String(),
		"g": pk.G().String(),
		"y": pk.Y().String(),
	})
}

func EncodeElGamalPrivateKey(sk *elgamal.PrivateKey) ([]byte, error) {
	return encode(TypeElGamalPrivate, fields{
		"p": sk.P().String(),
		"g": sk.G().String(),
		"y": sk.Y().String(),
		"x": sk.X().String(),
	})
}

func DecodeElGamalPublicKey(data []byte) (*elgamal.PublicKey, error) {
	f, err := decode(data, TypeElGamalPublic)
	if err != nil {
		return nil, err
	}
	v, err := f.Ints("p", "g", "y")
	if err != nil {
		return nil, err
	}
	return elgamal.NewPublicKey(v[0], v[1], v[2])
}

func DecodeElGamalPrivateKey(data []byte) (*elgamal.PrivateKey, error) {
	f, err := decode(data, TypeElGamalPrivate)
	if err != nil {
		return nil, err
	}
	v, err := f.Ints("p", "g", "y", "x")
	if err != nil {
		return nil, err
	}
	return elgamal.NewPrivateKey(v[0], v[1], v[2], v[3])
}
