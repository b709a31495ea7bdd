package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/taurusgroup/pubkey/pkg/aead"
	"github.com/taurusgroup/pubkey/pkg/ecdh"
	"github.com/taurusgroup/pubkey/pkg/ecdsa"
	"github.com/taurusgroup/pubkey/pkg/elgamal"
	"github.com/taurusgroup/pubkey/pkg/keyfile"
	"github.com/taurusgroup/pubkey/pkg/math/curve"
	"github.com/taurusgroup/pubkey/pkg/pool"
	"github.com/taurusgroup/pubkey/pkg/rsa"
	"golang.org/x/sync/errgroup"
)

func ElGamal(rand io.Reader, bits int, message []byte, keyDir string) error {
	sk, err := elgamal.GenerateKey(rand, bits)
	if err != nil {
		return err
	}
	pk := sk.Public()
	fmt.Printf("elgamal: p = %v\nelgamal: g = %v\nelgamal: y = %v\nelgamal: fingerprint %x\n", pk.P(), pk.G(), pk.Y(), pk.Fingerprint())

	if keyDir != "" {
		if err = writeElGamalKeys(keyDir, sk); err != nil {
			return err
		}
	}

	ct, err := elgamal.EncryptBytes(rand, pk, message)
	if err != nil {
		return err
	}
	fmt.Printf("elgamal: c1 = %v\nelgamal: c2 = %v\n", ct.C1, ct.C2)

	decrypted, err := elgamal.DecryptBytes(sk, ct, len(message))
	if err != nil {
		return err
	}
	fmt.Printf("elgamal: decrypted %q\n", decrypted)

	sig, err := elgamal.Sign(rand, sk, message)
	if err != nil {
		return err
	}
	if !elgamal.Verify(pk, message, sig) {
		return errors.New("failed to verify elgamal signature")
	}
	fmt.Printf("elgamal: signature (r = %v, s = %v) verified\n", sig.R, sig.S)
	return nil
}

func RSA(rand io.Reader, pl *pool.Pool, bits int, message []byte, keyDir string) error {
	sk, err := rsa.GenerateKey(rand, pl, bits)
	if err != nil {
		return err
	}
	fmt.Printf("rsa: n = %v\nrsa: e = %v\nrsa: fingerprint %x\n", sk.N(), sk.E(), sk.Public().Fingerprint())

	if keyDir != "" {
		if err = writeRSAKeys(keyDir, sk); err != nil {
			return err
		}
	}

	c, err := rsa.EncryptBytes(sk.Public(), message)
	if err != nil {
		return err
	}
	fmt.Printf("rsa: c = %v\n", c)
	decrypted, err := rsa.DecryptBytes(sk, c, len(message))
	if err != nil {
		return err
	}
	fmt.Printf("rsa: decrypted %q\n", decrypted)

	oaep, err := rsa.EncryptOAEP(rand, sk.Public(), message, nil)
	if err != nil {
		return err
	}
	decrypted, err = rsa.DecryptOAEP(sk, oaep, nil)
	if err != nil {
		return err
	}
	fmt.Printf("rsa: oaep ciphertext %x\nrsa: oaep decrypted %q\n", oaep, decrypted)
	return nil
}

// ECDSA signs message on group and checks that the signature does not verify for a different message.
func ECDSA(rand io.Reader, group curve.Curve, message []byte) error {
	sk, err := ecdsa.GenerateKey(rand, group)
	if err != nil {
		return err
	}
	sig, err := ecdsa.Sign(rand, sk, message)
	if err != nil {
		return err
	}
	if !ecdsa.Verify(sk.Public(), message, sig) {
		return errors.New("failed to verify ecdsa signature")
	}
	fmt.Printf("ecdsa: %s signature (r = %x, s = %x) verified\n", group.Name(), sig.R, sig.S)

	tampered := append([]byte("tampered: "), message...)
	if ecdsa.Verify(sk.Public(), tampered, sig) {
		return errors.New("ecdsa signature verified for a different message")
	}
	fmt.Printf("ecdsa: signature rejected for %q\n", tampered)
	return nil
}

// ECDH runs the key agreement between a sender and a receiver, each on its own goroutine.
// The sender seals message under the derived key, and the receiver opens it.
func ECDH(ctx context.Context, rand io.Reader, group curve.Curve, message []byte) error {
	const sender, receiver = "alice", "bob"
	net := NewNetwork(sender, receiver)
	reader := pool.NewLockedReader(rand)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		key, err := agree(ctx, reader, group, sender, receiver, net)
		if err != nil {
			return fmt.Errorf("%s: %w", sender, err)
		}
		sealed, err := aead.Seal(reader, key, message)
		if err != nil {
			return fmt.Errorf("%s: %w", sender, err)
		}
		fmt.Printf("ecdh: %s sends nonce %x, ciphertext %x, tag %x\n", sender, sealed.Nonce, sealed.Ciphertext, sealed.Tag)
		net.Send(&Message{From: sender, To: receiver, Sealed: sealed})
		return nil
	})
	eg.Go(func() error {
		key, err := agree(ctx, reader, group, receiver, sender, net)
		if err != nil {
			return fmt.Errorf("%s: %w", receiver, err)
		}
		msg, err := receive(ctx, net, receiver)
		if err != nil {
			return fmt.Errorf("%s: %w", receiver, err)
		}
		if msg.Sealed == nil {
			return fmt.Errorf("%s: expected a sealed message from %s", receiver, msg.From)
		}
		plaintext, err := aead.Open(key, msg.Sealed)
		if errors.Is(err, aead.ErrAuthentication) {
			return fmt.Errorf("%s: message from %s was tampered with", receiver, msg.From)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", receiver, err)
		}
		fmt.Printf("ecdh: %s decrypted %q\n", receiver, plaintext)
		return nil
	})
	return eg.Wait()
}

// agree generates a key pair for id, exchanges public keys with peer and returns the shared key.
func agree(ctx context.Context, rand io.Reader, group curve.Curve, id, peer string, net Network) ([]byte, error) {
	sk, err := ecdh.GenerateKey(rand, group)
	if err != nil {
		return nil, err
	}
	pub, err := sk.Public().Bytes()
	if err != nil {
		return nil, err
	}
	net.Send(&Message{From: id, To: peer, PublicKey: pub})

	msg, err := receive(ctx, net, id)
	if err != nil {
		return nil, err
	}
	peerKey, err := ecdh.ParsePublicKey(group, msg.PublicKey)
	if err != nil {
		return nil, err
	}
	key, err := ecdh.SharedKey(sk, peerKey)
	if err != nil {
		return nil, err
	}
	fmt.Printf("ecdh: %s (%s) derived key %x\n", id, group.Name(), key)
	return key, nil
}

func receive(ctx context.Context, net Network, id string) (*Message, error) {
	select {
	case msg := <-net.Next(id):
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func writeElGamalKeys(dir string, sk *elgamal.PrivateKey) error {
	pub, err := keyfile.EncodeElGamalPublicKey(sk.Public())
	if err != nil {
		return err
	}
	priv, err := keyfile.EncodeElGamalPrivateKey(sk)
	if err != nil {
		return err
	}
	return writeKeys(dir, "elgamal", pub, priv)
}

func writeRSAKeys(dir string, sk *rsa.PrivateKey) error {
	pub, err := keyfile.EncodeRSAPublicKey(sk.Public())
	if err != nil {
		return err
	}
	priv, err := keyfile.EncodeRSAPrivateKey(sk)
	if err != nil {
		return err
	}
	return writeKeys(dir, "rsa", pub, priv)
}

// writeKeys stores <scheme>-public-key.pem and <scheme>-private-key.pem, and reads the private key back.
func writeKeys(dir, scheme string, pub, priv []byte) error {
	pubPath := filepath.Join(dir, scheme+"-public-key.pem")
	privPath := filepath.Join(dir, scheme+"-private-key.pem")
	if err := os.WriteFile(pubPath, pub, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(privPath, priv, 0o600); err != nil {
		return err
	}
	data, err := os.ReadFile(privPath)
	if err != nil {
		return err
	}
	if _, err = keyfile.Decode(data); err != nil {
		return fmt.Errorf("reading back %s: %w", privPath, err)
	}
	fmt.Printf("%s: wrote %s and %s\n", scheme, pubPath, privPath)
	return nil
}

// All runs every scheme on message.
func All(ctx context.Context, rand io.Reader, pl *pool.Pool, cfg config) error {
	if err := ElGamal(rand, cfg.elGamalBits, cfg.message, cfg.keyDir); err != nil {
		return fmt.Errorf("elgamal: %w", err)
	}
	if err := RSA(rand, pl, cfg.rsaBits, cfg.message, cfg.keyDir); err != nil {
		return fmt.Errorf("rsa: %w", err)
	}
	if err := ECDSA(rand, cfg.group, cfg.message); err != nil {
		return fmt.Errorf("ecdsa: %w", err)
	}
	if err := ECDH(ctx, rand, cfg.group, cfg.message); err != nil {
		return fmt.Errorf("ecdh: %w", err)
	}
	return nil
}
