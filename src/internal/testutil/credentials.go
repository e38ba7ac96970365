// Package testutil holds connection settings for tests that need a live
// database. Every value can be overridden from the environment.
package testutil

import (
	"fmt"
	"os"
	"testing"
)

// IntegrationEnv enables tests that talk to a live database when set to 1.
const IntegrationEnv = "CYQ_INTEGRATION"

// Target is a test database endpoint.
type Target struct {
	User     string
	Password string
	Host     string
	Port     string
}

// URL formats the target for scheme, e.g. "neo4j+ssc".
func (t Target) URL(scheme string) string {
	return fmt.Sprintf("%s://%s:%s@%s:%s", scheme, t.User, t.Password, t.Host, t.Port)
}

// WithPassword returns a copy of t using password.
func (t Target) WithPassword(password string) Target {
	t.Password = password
	return t
}

var (
	Neo4j = Target{
		User:     getEnvOrDefault("NEO4J_USER", "neo4j"),
		Password: getEnvOrDefault("NEO4J_PASSWORD", "activecypher"),
		Host:     getEnvOrDefault("NEO4J_HOST", "localhost"),
		Port:     getEnvOrDefault("NEO4J_PORT", "7687"),
	}
	Memgraph = Target{
		User:     getEnvOrDefault("MEMGRAPH_USER", "memgraph"),
		Password: getEnvOrDefault("MEMGRAPH_PASSWORD", "activecypher"),
		Host:     getEnvOrDefault("MEMGRAPH_HOST", "localhost"),
		Port:     getEnvOrDefault("MEMGRAPH_PORT", "7688"),
	}
)

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// RequireIntegration skips the calling test unless CYQ_INTEGRATION=1.
func RequireIntegration(t testing.TB) {
	t.Helper()
	if os.Getenv(IntegrationEnv) != "1" {
		t.Skipf("set %s=1 to run against a live database", IntegrationEnv)
	}
}

func Neo4jURL() string { return Neo4j.URL("neo4j") }
func Neo4jSSCURL() string { return Neo4j.URL("neo4j+ssc") }
func MemgraphURL() string { return Memgraph.URL("memgraph") }

// InvalidCredentialsURL points at Neo4j with a wrong password.
func InvalidCredentialsURL() string {
	return Neo4j.WithPassword("wrongpass").URL("neo4j")
}
