package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/target/cipms/internal/adapters/password"
)

type hashOptions struct {
	Password string
	Stdin    bool
}

func runHashPassword(_ *commandContext, args []string) error {
	opts, err := parseHashFlags(args)
	if err != nil {
		return err
	}
	return hashPassword(os.Stdin, os.Stdout, opts)
}

func hashPassword(in io.Reader, out io.Writer, opts hashOptions) error {
	pw := opts.Password
	if opts.Stdin {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		pw = strings.TrimRight(line, "\r\n")
	}
	if pw == "" {
		return errors.New("password is required (use --password or --stdin)")
	}

	hash, err := password.Hash(pw, nil)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return writeln(out, hash)
}

func parseHashFlags(args []string) (hashOptions, error) {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts hashOptions
	fs.StringVar(&opts.Password, "password", "", "Password to hash (visible in shell history; prefer --stdin)")
	fs.BoolVar(&opts.Stdin, "stdin", false, "Read the password from the first line of stdin")

	if err := fs.Parse(args); err != nil {
		return hashOptions{}, err
	}
	if opts.Password != "" && opts.Stdin {
		return hashOptions{}, errors.New("--password and --stdin are mutually exclusive")
	}
	return opts, nil
}
