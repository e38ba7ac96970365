// Command cyq builds, checks and runs graph queries.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seuros/gopher-graph/src/driver"
)

// urlEnv names the environment variable read when --url is not given.
const urlEnv = "CYQ_URL"

// rootOptions holds global flags for all commands.
type rootOptions struct {
	URL       string
	LogLevel  string
	LogJSON   bool
	Telemetry bool
	EnvFile   string

	stderr        io.Writer
	stopTelemetry func(context.Context) error
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{stderr: stderr}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if opts.stopTelemetry != nil {
		if stopErr := opts.stopTelemetry(context.Background()); stopErr != nil {
			fmt.Fprintln(stderr, "telemetry shutdown:", stopErr)
		}
	}
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.Error() != "" {
			fmt.Fprintln(stderr, exitErr.Error())
		}
		return exitErr.code
	}
	fmt.Fprintln(stderr, err)
	return 1
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cyq",
		Short: "cyq - graph query tool",
		Long: `Build, check and run graph queries.

Queries can be written as YAML documents (cyq build) or as query text
(cyq lint, cyq fmt, cyq run).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.EnvFile != "" {
				if err := godotenv.Load(opts.EnvFile); err != nil {
					return usageErrorf(2, "Cannot load env file %s: %w", opts.EnvFile, err)
				}
			}
			if opts.Telemetry {
				stop, err := setupTelemetry(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				opts.stopTelemetry = stop
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.URL, "url", "", "connection URL (or set "+urlEnv+")")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "off", "driver log level (debug|info|warn|error|off)")
	cmd.PersistentFlags().BoolVar(&opts.LogJSON, "log-json", false, "write driver logs as JSON lines")
	cmd.PersistentFlags().BoolVar(&opts.Telemetry, "telemetry", false, "print OpenTelemetry traces and metrics to stderr")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "load environment variables from a .env file")

	cmd.AddCommand(newBuildCommand(opts))
	cmd.AddCommand(newLintCommand(opts))
	cmd.AddCommand(newFmtCommand(opts))
	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newPingCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// connectionURL returns --url, falling back to CYQ_URL.
func (o *rootOptions) connectionURL() (string, error) {
	url := o.URL
	if url == "" {
		url = os.Getenv(urlEnv)
	}
	if url == "" {
		return "", usageErrorf(2, "Missing --url (or set %s)", urlEnv)
	}
	return url, nil
}

// driverConfig maps the logging flags onto a driver configuration.
func (o *rootOptions) driverConfig() *driver.Config {
	cfg := driver.DefaultConfig()
	cfg.Observability.EnableTracing = o.Telemetry
	cfg.Observability.EnableMetrics = o.Telemetry

	level := driver.ParseLogLevel(o.LogLevel)
	if level == driver.LogLevelOff {
		return cfg
	}

	stderr := o.stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if o.LogJSON {
		cfg.Logging = driver.NewJSONLoggingConfig(level, stderr)
	} else {
		cfg.Logging = driver.NewConsoleLoggingConfig(level)
		cfg.Logging.Logger = driver.NewConsoleLoggerWithOutput(level, stderr, stderr)
	}
	return cfg
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cyq version %s\n", driver.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "User agent: %s\n", driver.UserAgent())
			return nil
		},
	}
}
