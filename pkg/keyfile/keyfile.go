// Package keyfile reads and writes keys as PEM blocks whose body is a JSON object
// of decimal strings, for example
//
//	-----BEGIN ELGAMAL PUBLIC KEY-----
//	eyJwIjogIjI1NzkiLCAiZyI6ICIyIiwgInkiOiAiOTQ5In0=
//	-----END ELGAMAL PUBLIC KEY-----
package keyfile

import (
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
)

const (
	TypeElGamalPublic  = "ELGAMAL PUBLIC KEY"
	TypeElGamalPrivate = "ELGAMAL PRIVATE KEY"
	TypeRSAPublic      = "RSA PUBLIC KEY"
	TypeRSAPrivate     = "RSA PRIVATE KEY"
)

var (
	ErrNoBlock        = errors.New("keyfile: no PEM block found")
	ErrUnexpectedType = errors.New("keyfile: unexpected block type")
	ErrInvalidField   = errors.New("keyfile: invalid field")
)

type fields map[string]string

func encode(blockType string, f fields) ([]byte, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("keyfile: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: body}), nil
}

// decode returns the fields of the first PEM block in data, which must have type blockType.
func decode(data []byte, blockType string) (fields, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoBlock
	}
	if block.Type != blockType {
		return nil, fmt.Errorf("%w: got %q, expected %q", ErrUnexpectedType, block.Type, blockType)
	}
	var f fields
	if err := json.Unmarshal(block.Bytes, &f); err != nil {
		return nil, fmt.Errorf("keyfile: %s: %w", blockType, err)
	}
	return f, nil
}

// Int parses the decimal field name.
func (f fields) Int(name string) (*big.Int, error) {
	s, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrInvalidField, name)
	}
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidField, name)
	}
	return x, nil
}

// Ints parses several decimal fields, in order.
func (f fields) Ints(names ...string) ([]*big.Int, error) {
	out := make([]*big.Int, len(names))
	for i, name := range names {
		x, err := f.Int(name)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// Type returns the type of the first PEM block in data.
func Type(data []byte) (string, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return "", ErrNoBlock
	}
	return block.Type, nil
}

// Decode returns the key held in data, as one of *elgamal.PublicKey, *elgamal.PrivateKey,
// *rsa.PublicKey or *rsa.PrivateKey.
func Decode(data []byte) (interface{}, error) {
	blockType, err := Type(data)
	if err != nil {
		return nil, err
	}
	switch blockType {
	case TypeElGamalPublic:
		return DecodeElGamalPublicKey(data)
	case TypeElGamalPrivate:
		return DecodeElGamalPrivateKey(data)
	case TypeRSAPublic:
		return DecodeRSAPublicKey(data)
	case TypeRSAPrivate:
		return DecodeRSAPrivateKey(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnexpectedType, blockType)
}
