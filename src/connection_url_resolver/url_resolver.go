// Package connection_url_resolver normalizes database connection URLs into
// a configuration the driver can dial.
//
// Supported URL prefixes:
//   - neo4j://, neo4j+ssl://, neo4j+ssc://
//   - memgraph://, memgraph+ssl://, memgraph+ssc://
//   - bolt://, bolt+ssl://, bolt+ssc://
//
// "+s" is accepted as an alias for "+ssc".
package connection_url_resolver

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Constants for supported adapters and default port
var (
	SupportedAdapters = []string{"neo4j", "memgraph", "bolt"}
	DefaultPort       = 7687
)

// ErrInvalidURL is returned for URLs that cannot be resolved.
var ErrInvalidURL = errors.New("invalid connection url")

// ConnectionConfig represents the normalized configuration for Cypher-based database connections
type ConnectionConfig struct {
	Adapter  string
	Username string
	Password string
	Host     string
	Port     int
	Database string
	SSL      bool
	SSC      bool
	Options  map[string]string
}

// Address returns host:port.
func (c *ConnectionConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Secure reports whether the connection is encrypted.
func (c *ConnectionConfig) Secure() bool { return c.SSL || c.SSC }

// VerifyCertificate reports whether the server certificate is checked.
func (c *ConnectionConfig) VerifyCertificate() bool { return c.Secure() && !c.SSC }

// TargetURI returns the URI understood by the official Bolt driver.
// Neo4j connections use routing; Memgraph and plain bolt connections
// talk to a single server.
func (c *ConnectionConfig) TargetURI() string {
	scheme := "bolt"
	if c.Adapter == "neo4j" {
		scheme = "neo4j"
	}
	switch {
	case c.SSC:
		scheme += "+ssc"
	case c.SSL:
		scheme += "+s"
	}
	return scheme + "://" + c.Address()
}

// Redacted renders the URL without the password, for logs.
func (c *ConnectionConfig) Redacted() string {
	scheme := c.Adapter
	switch {
	case c.SSC:
		scheme += "+ssc"
	case c.SSL:
		scheme += "+ssl"
	}
	user := ""
	if c.Username != "" {
		user = c.Username + ":***@"
	}
	path := ""
	if c.Database != "" {
		path = "/" + c.Database
	}
	return scheme + "://" + user + c.Address() + path
}

// Resolve parses a connection URL.
func Resolve(urlString string) (*ConnectionConfig, error) {
	if urlString == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	schemeParts := strings.SplitN(urlString, "://", 2)
	if len(schemeParts) != 2 {
		return nil, fmt.Errorf("%w: missing scheme", ErrInvalidURL)
	}

	adapter, modifiers, err := extractAdapterAndModifiers(schemeParts[0])
	if err != nil {
		return nil, err
	}

	uri, err := url.Parse(adapter + "://" + schemeParts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	options := make(map[string]string)
	for key, values := range uri.Query() {
		if len(values) > 0 && key != "" && values[0] != "" {
			options[key] = values[0]
		}
	}

	// Neo4j defaults to a database named after the adapter; Memgraph and
	// plain bolt servers have no default database.
	database := strings.TrimPrefix(uri.Path, "/")
	if database == "" && adapter == "neo4j" {
		database = adapter
	}

	var username, password string
	if uri.User != nil {
		username = uri.User.Username()
		password, _ = uri.User.Password()
	}

	host := uri.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := DefaultPort
	if p := uri.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: port %q", ErrInvalidURL, p)
		}
		port = n
	}

	useSSC := contains(modifiers, "ssc")
	return &ConnectionConfig{
		Adapter:  adapter,
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Database: database,
		SSL:      contains(modifiers, "ssl") || useSSC,
		SSC:      useSSC,
		Options:  options,
	}, nil
}

func extractAdapterAndModifiers(scheme string) (string, []string, error) {
	parts := strings.Split(scheme, "+")
	adapter := parts[0]
	if !contains(SupportedAdapters, adapter) {
		return "", nil, fmt.Errorf("%w: unsupported adapter %q", ErrInvalidURL, adapter)
	}

	var modifiers []string
	for _, m := range parts[1:] {
		switch m {
		case "ssl":
			modifiers = append(modifiers, "ssl")
		case "ssc", "s":
			modifiers = append(modifiers, "ssc")
		default:
			return "", nil, fmt.Errorf("%w: unknown modifier %q", ErrInvalidURL, m)
		}
	}
	return adapter, modifiers, nil
}

func contains(slice []string, element string) bool {
	for _, e := range slice {
		if e == element {
			return true
		}
	}
	return false
}
