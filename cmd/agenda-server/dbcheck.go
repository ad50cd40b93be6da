package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var versionQueries = map[string]string{
	"postgres": "SELECT version()",
	"sqlite":   "SELECT sqlite_version()",
}

// dbcheckCmd is a standalone connectivity probe. It opens its own
// database/sql connection and is never used by the server.
func dbcheckCmd() *cobra.Command {
	var (
		driver  string
		dsn     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "dbcheck",
		Short: "Check connectivity to a database and print its version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}
			if dsn == "" {
				return fmt.Errorf("--dsn or DATABASE_URL is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			version, err := checkConnectivity(ctx, driver, dsn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "connected (%s): %s\n", driver, version)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "postgres", "database/sql driver: postgres or sqlite")
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name (defaults to DATABASE_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "connection timeout")
	return cmd
}

func checkConnectivity(ctx context.Context, driver, dsn string) (string, error) {
	query, ok := versionQueries[driver]
	if !ok {
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", driver, err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return "", fmt.Errorf("ping %s: %w", driver, err)
	}
	var version string
	if err := conn.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return "", fmt.Errorf("query version: %w", err)
	}
	return version, nil
}
