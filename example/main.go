package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	"github.com/docopt/docopt-go"

	"github.com/taurusgroup/pubkey/pkg/math/curve"
	"github.com/taurusgroup/pubkey/pkg/pool"
)

const USAGE = `pubkey-example

Runs ElGamal, RSA, ECDSA and an ECDH key agreement followed by an authenticated exchange.

Usage:
  pubkey-example [options]
  pubkey-example -h | --help

Options:
  -h --help             Show this screen.
  --elgamal-bits=<n>    Size of the ElGamal prime [default: 256].
  --rsa-bits=<n>        Size of each RSA prime [default: 512].
  --curve=<name>        Curve for ECDSA and the key agreement, P-256 or secp256k1 [default: P-256].
  --message=<text>      Message to encrypt and sign [default: Meet at midnight].
  --keys=<dir>          Directory to write key files to.
  --workers=<n>         Prime search workers, 0 uses all CPUs [default: 0].
`

type config struct {
	elGamalBits int
	rsaBits     int
	group       curve.Curve
	message     []byte
	keyDir      string
}

var errHelp = errors.New("help requested")

// parseConfig reads the options in argv. Parse failures are returned rather than
// exiting, and -h or --help yields errHelp.
func parseConfig(argv []string) (config, int, error) {
	var cfg config
	if argv == nil {
		// docopt reads os.Args for a nil argv
		argv = []string{}
	}
	parser := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}
	opts, err := parser.ParseArgs(USAGE, argv, "")
	if err != nil {
		return cfg, 0, err
	}
	if opts == nil {
		return cfg, 0, errHelp
	}
	if cfg.elGamalBits, err = opts.Int("--elgamal-bits"); err != nil {
		return cfg, 0, err
	}
	if cfg.rsaBits, err = opts.Int("--rsa-bits"); err != nil {
		return cfg, 0, err
	}
	workers, err := opts.Int("--workers")
	if err != nil {
		return cfg, 0, err
	}
	curveName, _ := opts.String("--curve")
	if cfg.group, err = curve.FromName(curveName); err != nil {
		return cfg, 0, err
	}
	message, _ := opts.String("--message")
	cfg.message = []byte(message)
	// unset options parse to nil
	cfg.keyDir, _ = opts.String("--keys")
	return cfg, workers, nil
}

func main() {
	cfg, workers, err := parseConfig(os.Args[1:])
	if errors.Is(err, errHelp) {
		fmt.Print(USAGE + "\n")
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, USAGE+"\n")
		os.Exit(1)
	}

	pl := pool.NewPool(workers)
	if err = All(context.Background(), rand.Reader, pl, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
