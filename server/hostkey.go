package server

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureHostKey writes a new ed25519 host key to path unless a file is already there.
func EnsureHostKey(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to stat host key: %w", err)
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("unable to generate host key: %w", err)
	}
	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return fmt.Errorf("unable to marshal host key: %w", err)
	}

	// path only ever holds a complete key: it is written to a temp file next to it and renamed.
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("unable to create host key: %w", err)
	}
	defer os.Remove(f.Name())

	if err := f.Chmod(0o600); err != nil {
		f.Close()
		return fmt.Errorf("unable to set host key permissions: %w", err)
	}
	if err := pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes}); err != nil {
		f.Close()
		return fmt.Errorf("unable to write host key: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to write host key: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("unable to save host key: %w", err)
	}
	return nil
}
