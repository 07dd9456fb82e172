package rsmq

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

func buildTLSConfig(o Options) (*tls.Config, error) {
	if !o.TLS {
		return nil, nil
	}

	cfg := &tls.Config{InsecureSkipVerify: o.SkipTLSVerification}

	if o.ClientCertFile != "" || o.ClientKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(o.ClientCertFile, o.ClientKeyFile)
		if err != nil {
			return nil, fmt.Errorf("rsmq: loading client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if o.CACertFile != "" {
		pem, err := os.ReadFile(o.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("rsmq: reading CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("rsmq: no certificates found in %s", o.CACertFile)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
