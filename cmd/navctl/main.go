// Command navctl runs operator tasks against the configured store.
//
// Usage:
//
//	navctl migrate up|down
//	navctl reset-password -username admin -password <new>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"maonav/internal/adapter/postgres"
	"maonav/internal/app"
	"maonav/internal/config"
	"maonav/internal/storage"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "navctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: navctl migrate up|down | reset-password -username NAME -password PW")
	}

	switch args[0] {
	case "migrate":
		return migrate(args[1:], out)
	case "reset-password":
		return resetPassword(args[1:], out)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func migrate(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: navctl migrate up|down")
	}
	direction := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch cfg.Store {
	case config.StorePostgres:
		if err := postgres.Migrate(cfg.DatabaseURL, direction); err != nil {
			return err
		}
	case config.StoreSQLite:
		// The SQLite schema is created on open; only "up" is meaningful.
		if direction != "up" {
			return fmt.Errorf("migrate %s is not supported for sqlite", direction)
		}
		b, err := storage.Open(cfg)
		if err != nil {
			return err
		}
		if err := b.Close(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("migrate is not supported for store %q", cfg.Store)
	}

	_, _ = fmt.Fprintf(out, "migrate %s: ok\n", direction)
	return nil
}

func resetPassword(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	username := fs.String("username", "", "admin username")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("reset-password requires -username and -password")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Store == config.StoreMemory {
		return errors.New("reset-password needs a persistent store")
	}

	b, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	auth := app.NewAuthService(b.Repos, b.Sessions, cfg.JWTSecret, app.WithLogger(cfg.NewLogger(io.Discard)))
	if err := auth.ResetPassword(context.Background(), *username, *password); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "password for %q reset; all sessions ended\n", *username)
	return nil
}
