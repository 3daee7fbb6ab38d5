// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/pkg/errors"

	"resback/config"
)

// KeyMaterial holds the RSA key pair used to sign and verify session tokens.
// It is loaded once at startup and treated as immutable afterwards.
type KeyMaterial struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// LoadKeyMaterial reads and parses both PEM files named in the config.
// Any problem with either file is a startup failure; the process must not
// come up able to verify but not sign, or the reverse.
func LoadKeyMaterial(cfg *config.Config) (*KeyMaterial, error) {
	if cfg.Token.PrivateKeyPath == "" || cfg.Token.PublicKeyPath == "" {
		return nil, errors.New("token key paths must be provided")
	}

	privateKey, err := loadPrivateKey(cfg.Token.PrivateKeyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "load private key %s", cfg.Token.PrivateKeyPath)
	}

	publicKey, err := loadPublicKey(cfg.Token.PublicKeyPath)
	if err != nil {
		return nil, errors.Wrapf(err, "load public key %s", cfg.Token.PublicKeyPath)
	}

	return &KeyMaterial{privateKey: privateKey, publicKey: publicKey}, nil
}

// NewKeyMaterial wraps an in-memory key pair. Used by tests and tooling
// that generate keys on the fly.
func NewKeyMaterial(privateKey *rsa.PrivateKey) *KeyMaterial {
	return &KeyMaterial{privateKey: privateKey, publicKey: &privateKey.PublicKey}
}

// SigningKey returns the private key used to sign tokens.
func (k *KeyMaterial) SigningKey() *rsa.PrivateKey {
	return k.privateKey
}

// VerificationKey returns the public key used to verify tokens.
func (k *KeyMaterial) VerificationKey() *rsa.PublicKey {
	return k.publicKey
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	// PKCS#1 first ("RSA PRIVATE KEY"), then PKCS#8 ("PRIVATE KEY").
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key is %T, want *rsa.PrivateKey", parsed)
	}

	return key, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	block, err := readPEM(path)
	if err != nil {
		return nil, err
	}

	// PKIX first ("PUBLIC KEY"), then PKCS#1 ("RSA PUBLIC KEY").
	if parsed, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		key, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, errors.Errorf("public key is %T, want *rsa.PublicKey", parsed)
		}

		return key, nil
	}

	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse public key")
	}

	return key, nil
}

func readPEM(path string) (*pem.Block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	return block, nil
}
