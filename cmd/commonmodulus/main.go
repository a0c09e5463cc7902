/*
commonmodulus recovers a plaintext encrypted twice under one RSA modulus with two coprime public exponents.

	commonmodulus -n 143 -e1 7 -e2 11 -ct1 6 -ct2 106 -of decimal

The five integers may also be read from a .json, .cbor or .pem case file with -case; flags given
alongside it override the file. Exit status is 0 on success, 1 when the attack fails and 2 for bad arguments.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/bastionzero/commonmodulus"
	"github.com/bastionzero/commonmodulus/internal/casefile"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// options is everything the attack needs, resolved from flags and an optional case file
type options struct {
	attackCase commonmodulus.Case
	quiet      bool
	format     commonmodulus.OutputFormat
}

// bigFlag is a flag.Value holding a non-negative arbitrary-precision integer
type bigFlag struct {
	value *big.Int
}

func (b *bigFlag) String() string {
	if b == nil || b.value == nil {
		return ""
	}
	return b.value.String()
}

func (b *bigFlag) Set(s string) error {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return fmt.Errorf("not an integer: %q", s)
	} else if v.Sign() < 0 {
		return fmt.Errorf("must not be negative: %v", v)
	}
	b.value = v
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("commonmodulus", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "RSA common modulus attack\n\nUsage: %s -n N -e1 E1 -e2 E2 -ct1 C1 -ct2 C2 [-q] [-of FORMAT]\n\n", fs.Name())
		fs.PrintDefaults()
	}

	var n, e1, e2, ct1, ct2 bigFlag
	fs.Var(&n, "n", "Common modulus (shorthand for -modulus)")
	fs.Var(&n, "modulus", "Common modulus")
	fs.Var(&e1, "e1", "First exponent")
	fs.Var(&e2, "e2", "Second exponent")
	fs.Var(&ct1, "ct1", "First ciphertext")
	fs.Var(&ct2, "ct2", "Second ciphertext")

	var quiet bool
	fs.BoolVar(&quiet, "q", false, "Suppress progress messages (shorthand for -quiet)")
	fs.BoolVar(&quiet, "quiet", false, "Suppress progress messages")

	formatHelp := fmt.Sprintf("Output format, one of %v", commonmodulus.Formats())
	var format string
	fs.StringVar(&format, "of", string(commonmodulus.DefaultFormat), formatHelp+" (shorthand for -outputformat)")
	fs.StringVar(&format, "outputformat", string(commonmodulus.DefaultFormat), formatHelp)

	casePath := fs.String("case", "", "Read modulus, exponents and ciphertexts from a .json, .cbor or .pem case file")

	if len(args) == 0 {
		fs.Usage()
		return exitFailure
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	} else if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}

	opts, err := resolve(*casePath, []*bigFlag{&n, &e1, &e2, &ct1, &ct2}, quiet, format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	return attack(opts, stdout, stderr)
}

// resolve merges the case file with the integer flags, in the order n, e1, e2, ct1, ct2
func resolve(casePath string, ints []*bigFlag, quiet bool, format string) (*options, error) {
	of, err := commonmodulus.ParseOutputFormat(format)
	if err != nil {
		return nil, err
	}

	opts := &options{
		quiet:  quiet,
		format: of,
	}

	if casePath != "" {
		c, err := casefile.Load(casePath)
		if err != nil {
			return nil, err
		}
		opts.attackCase = *c
	}

	fields := []**big.Int{
		&opts.attackCase.N,
		&opts.attackCase.E1,
		&opts.attackCase.E2,
		&opts.attackCase.C1,
		&opts.attackCase.C2,
	}
	names := []string{"-n/-modulus", "-e1", "-e2", "-ct1", "-ct2"}

	var missing []string
	for i, f := range ints {
		if f.value != nil {
			*fields[i] = f.value
		}
		if *fields[i] == nil {
			missing = append(missing, names[i])
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required arguments: %s", strings.Join(missing, ", "))
	}

	return opts, nil
}

func attack(opts *options, stdout, stderr io.Writer) int {
	// raw output is the plaintext bytes and nothing else
	progress := func(line string) {
		if !opts.quiet && opts.format != commonmodulus.Raw {
			fmt.Fprintln(stdout, line)
		}
	}

	progress("Starting the attack...")

	m, err := opts.attackCase.Recover()
	if err != nil {
		var inconsistent *commonmodulus.ConsistencyError
		if errors.As(err, &inconsistent) {
			if opts.format == commonmodulus.Raw {
				return exitFailure
			}
			printCandidates(inconsistent, opts.format, stderr)
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	out, err := commonmodulus.Encode(m, opts.format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	progress("Attack complete.")
	progress("Plaintext message:")

	if opts.format == commonmodulus.Raw {
		if _, err := stdout.Write(out); err != nil {
			fmt.Fprintf(stderr, "Error: failed to write plaintext: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintf(stdout, "%s\n", out)
	return exitOK
}

// render both disagreeing candidates so the mismatch can be inspected
func printCandidates(inconsistent *commonmodulus.ConsistencyError, format commonmodulus.OutputFormat, stderr io.Writer) {
	for i, candidate := range []*big.Int{inconsistent.Forward, inconsistent.Backward} {
		out, err := commonmodulus.Encode(candidate, format)
		if err != nil {
			// not valid text; fall back to something that always renders
			out, _ = commonmodulus.Encode(candidate, commonmodulus.Quoted)
		}
		fmt.Fprintf(stderr, "Plaintext message%d: %s\n", i+1, out)
	}
}
