// Package driver executes rendered queries against Neo4j and Memgraph
// through the official neo4j-go-driver, adding pluggable logging and
// OpenTelemetry instrumentation on top.
package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/seuros/gopher-graph/src/connection_url_resolver"
	"github.com/seuros/gopher-graph/src/cypher"
)

// Driver executes query text against a Cypher-compatible database. It
// satisfies cypher.Runner so builder queries can run through it directly.
type Driver interface {
	cypher.Runner
	// RunWithSummary executes query text and also returns execution metadata.
	RunWithSummary(ctx context.Context, query string) ([]cypher.Record, *ResultSummary, error)
	// Ping verifies the server is reachable and the credentials are accepted.
	Ping(ctx context.Context) error
	// Close releases all resources associated with the driver.
	Close(ctx context.Context) error
	// Target returns the resolved connection with the password redacted.
	Target() string
}

// driver implements Driver on top of neo4j.DriverWithContext.
type driver struct {
	conn          *connection_url_resolver.ConnectionConfig
	neo           neo4j.DriverWithContext
	config        *Config
	observability *observabilityInstruments
	logger        Logger
}

// NewDriver initializes a new Driver based on the provided connection URL
// and verifies connectivity.
func NewDriver(ctx context.Context, urlString string) (Driver, error) {
	return NewDriverWithConfig(ctx, urlString, nil)
}

// NewDriverWithConfig creates a new Driver with custom configuration options.
// If config is nil, default configuration is used.
func NewDriverWithConfig(ctx context.Context, urlString string, config *Config) (Driver, error) {
	d, err := open(urlString, config)
	if err != nil {
		return nil, err
	}

	if err := d.Ping(ctx); err != nil {
		d.logger.Error("Initial ping failed", "error", err)
		_ = d.Close(ctx)
		return nil, err
	}

	d.logger.Info("Driver initialized successfully", "address", d.conn.Address())
	return d, nil
}

// open builds the driver without touching the network.
func open(urlString string, config *Config) (*driver, error) {
	if config == nil {
		config = DefaultConfig()
	}
	d := &driver{
		config: config,
		logger: &NoOpLogger{},
	}
	if config.Logging != nil && config.Logging.Logger != nil {
		d.logger = config.Logging.Logger
	}

	conn, err := connection_url_resolver.Resolve(urlString)
	if err != nil {
		d.logger.Error("Failed to resolve connection URL", "error", err)
		return nil, fmt.Errorf("unable to resolve connection url: %w", err)
	}
	d.conn = conn
	d.logger.Info("Initializing gopher-graph driver", "url", conn.Redacted())
	d.logger.Debug("Connection URL resolved", "host", conn.Host, "port", conn.Port, "ssl", conn.SSL, "ssc", conn.SSC, "database", conn.Database)

	if config.Observability != nil && (config.Observability.EnableTracing || config.Observability.EnableMetrics) {
		d.observability = initObservability()
		d.logger.Debug("Observability enabled", "tracing", config.Observability.EnableTracing, "metrics", config.Observability.EnableMetrics)
	}

	if conn.SSC {
		d.logger.Warn("TLS certificate verification disabled (SSC mode)", "address", conn.Address())
	}

	d.neo, err = neo4j.NewDriverWithContext(config.target(conn), auth(conn), config.configurer(conn, d.logger))
	if err != nil {
		d.logger.Error("Failed to create neo4j driver", "error", err)
		return nil, err
	}

	if d.observability != nil {
		d.observability.recordConnectionEvent(connectionOpened, config.Observability, nil)
	}
	return d, nil
}

func auth(conn *connection_url_resolver.ConnectionConfig) neo4j.AuthToken {
	if conn.Username == "" {
		return neo4j.NoAuth()
	}
	return neo4j.BasicAuth(conn.Username, conn.Password, "")
}

// Target returns the redacted connection URL.
func (d *driver) Target() string {
	return d.conn.Redacted()
}

// Close shuts down the underlying driver and its connection pool.
func (d *driver) Close(ctx context.Context) error {
	d.logger.Info("Closing driver")
	if d.observability != nil {
		d.observability.recordConnectionEvent(connectionClosed, d.config.Observability, nil)
	}
	return d.neo.Close(ctx)
}
