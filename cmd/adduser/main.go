// Command adduser registers a persona directly in the configured store,
// for households that run the server without open registration.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/famfin/fintrack/internal/config"
	"github.com/famfin/fintrack/internal/ledger"
	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage/backend"
	"github.com/famfin/fintrack/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	fs.StringVar(&cfg.DataBackend, "backend", cfg.DataBackend, "Storage backend: sqlite or jsonfile")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the sqlite database")
	fs.StringVar(&cfg.DataDir, "dir", cfg.DataDir, "Directory of the jsonfile store")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> [-password <password>] [-backend sqlite|jsonfile] [-db <db_path>] [-dir <data_dir>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: user")
	}
	if cfg.DataBackend == config.BackendMemory {
		return fmt.Errorf("backend %q does not persist users", cfg.DataBackend)
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // Print newline after password input
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	logger := logging.New(stderr, slog.LevelWarn, true)
	store, err := backend.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	user, err := ledger.NewFacade(store, ledger.WithLogger(logger)).Register(context.Background(), *username, password)
	switch {
	case errors.Is(err, models.ErrAlreadyExists):
		return fmt.Errorf("user %s already exists", models.NormalizeUsername(*username))
	case err != nil:
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Username, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
