package driver

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"

	"github.com/seuros/gopher-graph/src/connection_url_resolver"
)

// AccessMode selects the transaction function used for queries.
type AccessMode int

const (
	// AccessModeWrite runs queries in write transactions (default)
	AccessModeWrite AccessMode = iota
	// AccessModeRead runs queries in read transactions, routed to followers on clusters
	AccessModeRead
)

// Config holds configuration options for the driver
type Config struct {
	// TLS holds TLS-specific configuration, used for +ssl and +ssc URLs
	TLS *TLSConfig

	// ConnectionPool holds connection pool configuration
	ConnectionPool *PoolConfig

	// AccessMode selects read or write transactions
	AccessMode AccessMode

	// Database overrides the database named in the connection URL
	Database string

	// FetchSize is the number of records pulled per batch; 0 keeps the driver default
	FetchSize int

	// Observability holds telemetry configuration
	Observability *ObservabilityConfig

	// Logging holds logging configuration
	Logging *LoggingConfig
}

// TLSConfig provides advanced TLS configuration options
type TLSConfig struct {
	// Config allows passing a custom tls.Config directly
	// If provided, this takes precedence over other TLS settings
	Config *tls.Config

	// InsecureSkipVerify disables certificate verification (equivalent to +ssc)
	InsecureSkipVerify bool

	// ServerName specifies the expected server name for certificate validation
	// If empty, it's derived from the connection URL
	ServerName string

	// ClientCertificates holds client certificates for mutual TLS
	ClientCertificates []tls.Certificate

	// RootCAs specifies the root certificate authorities to trust
	// If nil, system root CAs are used
	RootCAs *x509.CertPool

	// MinVersion specifies the minimum TLS version (default: TLS 1.2)
	MinVersion uint16

	// MaxVersion specifies the maximum TLS version (default: latest)
	MaxVersion uint16
}

// PoolConfig provides connection pool configuration options
type PoolConfig struct {
	// MaxConnections specifies the maximum number of connections in the pool
	// Default: 100 (matching Neo4j driver)
	MaxConnections int

	// ConnectionLifetime specifies the maximum lifetime of a connection
	// Default: 1 hour (matching Neo4j driver)
	ConnectionLifetime time.Duration

	// AcquisitionTimeout specifies how long to wait for a connection from the pool
	// Default: 30 seconds
	AcquisitionTimeout time.Duration

	// SocketConnectTimeout bounds the TCP connect of a new connection
	// Default: 5 seconds
	SocketConnectTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		TLS: &TLSConfig{
			MinVersion: tls.VersionTLS12,
		},
		ConnectionPool: &PoolConfig{
			MaxConnections:       100,
			ConnectionLifetime:   1 * time.Hour,
			AcquisitionTimeout:   30 * time.Second,
			SocketConnectTimeout: 5 * time.Second,
		},
		AccessMode:    AccessModeWrite,
		Observability: DefaultObservabilityConfig(),
		Logging:       DefaultLoggingConfig(),
	}
}

// NewTLSConfigFromCertFiles creates a TLSConfig from certificate file paths
func NewTLSConfigFromCertFiles(certFile, keyFile, caFile string) (*TLSConfig, error) {
	tlsConfig := &TLSConfig{
		MinVersion: tls.VersionTLS12,
	}

	if certFile != "" && keyFile != "" {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsConfig.ClientCertificates = []tls.Certificate{cert}
	}

	if caFile != "" {
		caCertData, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file %s: %w", caFile, err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCertData) {
			return nil, fmt.Errorf("failed to parse CA certificate from %s", caFile)
		}
		tlsConfig.RootCAs = caCertPool
	}

	return tlsConfig, nil
}

// buildTLSConfig creates a *tls.Config from TLSConfig settings
func (tc *TLSConfig) buildTLSConfig(serverName string) *tls.Config {
	if tc.Config != nil {
		return tc.Config.Clone()
	}

	config := &tls.Config{
		InsecureSkipVerify: tc.InsecureSkipVerify,
		ServerName:         tc.ServerName,
		Certificates:       tc.ClientCertificates,
		RootCAs:            tc.RootCAs,
		MinVersion:         tc.MinVersion,
		MaxVersion:         tc.MaxVersion,
	}

	if config.ServerName == "" {
		config.ServerName = serverName
	}

	return config
}

// database returns the database sessions should target.
func (c *Config) database(conn *connection_url_resolver.ConnectionConfig) string {
	if c.Database != "" {
		return c.Database
	}
	return conn.Database
}

// target returns the URI handed to the neo4j driver. When a TLS config is
// supplied the encryption modifier is dropped from the scheme and the
// custom tls.Config carries the encryption instead.
func (c *Config) target(conn *connection_url_resolver.ConnectionConfig) string {
	if c.TLS == nil || !conn.Secure() {
		return conn.TargetURI()
	}
	scheme := "bolt"
	if conn.Adapter == "neo4j" {
		scheme = "neo4j"
	}
	return scheme + "://" + conn.Address()
}

// configurer translates Config into neo4j driver settings.
func (c *Config) configurer(conn *connection_url_resolver.ConnectionConfig, logger Logger) func(*neo4jconfig.Config) {
	return func(nc *neo4jconfig.Config) {
		nc.UserAgent = UserAgent()

		if p := c.ConnectionPool; p != nil {
			if p.MaxConnections > 0 {
				nc.MaxConnectionPoolSize = p.MaxConnections
			}
			if p.ConnectionLifetime > 0 {
				nc.MaxConnectionLifetime = p.ConnectionLifetime
			}
			if p.AcquisitionTimeout > 0 {
				nc.ConnectionAcquisitionTimeout = p.AcquisitionTimeout
			}
			if p.SocketConnectTimeout > 0 {
				nc.SocketConnectTimeout = p.SocketConnectTimeout
			}
		}

		if c.FetchSize != 0 {
			nc.FetchSize = c.FetchSize
		}

		if c.TLS != nil && conn.Secure() {
			tlsCfg := c.TLS.buildTLSConfig(conn.Host)
			if conn.SSC {
				tlsCfg.InsecureSkipVerify = true
			}
			nc.TlsConfig = tlsCfg
		}

		if c.Logging != nil && c.Logging.LogDriverInternals && logger != nil {
			nc.Log = &neo4jLogBridge{logger: logger}
		}
	}
}
