package gtfsrtsink

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/youmark/pkcs8"
)

// loadServerTLS reads the key and certificate files and builds the server
// TLS config. The private key may be protected with the configured
// passphrase, either as a legacy encrypted PEM block or as an encrypted
// PKCS#8 envelope; unencrypted keys pass through untouched.
func loadServerTLS(cfg ServerConfig) (*tls.Config, error) {
	certPEM, err := os.ReadFile(cfg.TLSCertFile)
	if err != nil {
		return nil, fmt.Errorf("read certificate %s: %w", cfg.TLSCertFile, err)
	}
	keyPEM, err := os.ReadFile(cfg.TLSKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", cfg.TLSKeyFile, err)
	}

	keyPEM, err = decryptKeyPEM(keyPEM, cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypt key %s: %w", cfg.TLSKeyFile, err)
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("build key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func decryptKeyPEM(keyPEM []byte, passphrase string) ([]byte, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in key file")
	}

	switch {
	case x509.IsEncryptedPEMBlock(block): //nolint:staticcheck // legacy PEM encryption is what passphrase-protected deployments ship
		der, err := x509.DecryptPEMBlock(block, []byte(passphrase)) //nolint:staticcheck
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil

	case block.Type == "ENCRYPTED PRIVATE KEY":
		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(passphrase))
		if err != nil {
			return nil, err
		}
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	default:
		return keyPEM, nil
	}
}
