// ABOUTME: Entry point for the briefcase CLI
// ABOUTME: Dispatches subcommands onto the storage backend selected by config

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/2389/briefcase/internal/config"
	"github.com/2389/briefcase/internal/entry"
	"github.com/2389/briefcase/internal/location"
	"github.com/2389/briefcase/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

type command struct {
	name        string
	description string
	usage       string
}

var commands = []command{
	{"version", "Show the version of briefcase", "briefcase version"},
	{"info", "Show information about the store used by briefcase", "briefcase info"},
	{"set", "Set a briefcase variable", "briefcase set <variable> <value>"},
	{"get", "Get a briefcase variable", "briefcase get <variable>"},
	{"remove", "Remove a briefcase variable", "briefcase remove <variable>"},
	{"list", "List briefcase entries", "briefcase list"},
	{"purge", "Purge briefcase data", "briefcase purge [--force]"},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	args := os.Args[2:]

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Println("Briefcase " + version)
	case "info":
		err = runInfo(ctx)
	case "set":
		err = runSet(ctx, args)
	case "get":
		err = runGet(ctx, args)
	case "remove":
		err = runRemove(ctx, args)
	case "list":
		err = runList(ctx)
	case "purge":
		err = runPurge(ctx, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(color.Error, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	fmt.Println()
	cyan.Println("briefcase - persist small named values across shell sessions")
	fmt.Println()
	yellow.Println("Commands:")
	for _, cmd := range commands {
		fmt.Println("  " + cmd.name)
		fmt.Println("\tDescription: " + cmd.description)
		fmt.Println("\tUsage: " + cmd.usage)
	}
	fmt.Println()
	yellow.Println("Environment (files backend):")
	fmt.Println("  BRIEFCASE_DIR        Store root directory (checked before TEMP, TMPDIR)")
	fmt.Println("  BRIEFCASE_DIRNAME    Store directory name (default: briefcase)")
	fmt.Println()
	yellow.Println("Configuration:")
	fmt.Println("  BRIEFCASE_CONFIG     Config file path (default: ~/.config/briefcase/briefcase.yaml)")
	fmt.Println()
}

// configPath returns the path to the briefcase config file.
// Priority: BRIEFCASE_CONFIG env var > XDG_CONFIG_HOME/briefcase/briefcase.yaml > ~/.config/briefcase/briefcase.yaml
func configPath() string {
	if envPath := os.Getenv("BRIEFCASE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "briefcase.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "briefcase", "briefcase.yaml")
}

func setupLogger(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	// stdout is reserved for command output (get prints raw value bytes)
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// resolveLocation determines where the store lives for the configured
// backend. An explicit storage.path wins over both resolver policies.
func resolveLocation(cfg *config.Config) (location.Location, error) {
	if cfg.Storage.Path != "" {
		return location.Location{Path: cfg.Storage.Path, Source: "config"}, nil
	}

	switch cfg.Storage.Backend {
	case config.BackendFiles:
		return location.ResolveTemp(os.Getenv), nil
	default:
		return location.ResolveHome(os.Getenv)
	}
}

// openStore loads config, installs the logger and constructs the backend.
// No disk I/O happens here; stores open lazily.
func openStore() (store.Store, *config.Config, location.Location, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, nil, location.Location{}, fmt.Errorf("loading config: %w", err)
	}

	setupLogger(cfg.Logging)

	loc, err := resolveLocation(cfg)
	if err != nil {
		return nil, nil, location.Location{}, err
	}

	var s store.Store
	switch cfg.Storage.Backend {
	case config.BackendFiles:
		s = store.NewFileStore(loc.Path)
	default:
		s = store.NewSQLiteStore(loc.Path)
	}

	return s, cfg, loc, nil
}

func runInfo(ctx context.Context) error {
	s, cfg, loc, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Briefcase Store")
	cyan.Println("  ---------------")
	fmt.Printf("  Backend:      %s\n", cfg.Storage.Backend)
	fmt.Printf("  Location:     %s\n", loc.Path)
	fmt.Printf("  Sourced From: %s\n", loc.Source)

	if cfg.Storage.Backend == config.BackendSQLite {
		count, err := s.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("  Entries:      %d\n", count)

		if sq, ok := s.(*store.SQLiteStore); ok {
			id, err := sq.StoreID(ctx)
			if err == nil {
				fmt.Printf("  Store ID:     %s\n", id)
			} else if !errors.Is(err, store.ErrStoreNotFound) {
				return err
			}
		}
	}

	fmt.Println()
	return nil
}

func runSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: briefcase set <variable> <value>")
	}
	name := args[0]
	// Join remaining args so unquoted multi-word values work
	value := strings.Join(args[1:], " ")

	s, _, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Set(ctx, name, value); err != nil {
		if errors.Is(err, entry.ErrInvalidName) {
			return fmt.Errorf("invalid entry name: %s", name)
		}
		return err
	}

	fmt.Printf("Set %s = %s\n", name, value)
	return nil
}

func runGet(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: briefcase get <variable>")
	}
	name := args[0]

	s, _, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	value, err := s.Get(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("entry not found: %s", name)
	}
	if errors.Is(err, entry.ErrInvalidName) {
		return fmt.Errorf("invalid entry name: %s", name)
	}
	if err != nil {
		return err
	}

	// Exact value bytes, no trailing newline
	_, err = io.WriteString(os.Stdout, value)
	return err
}

func runRemove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: briefcase remove <variable>")
	}
	name := args[0]

	s, _, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Remove(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("entry not found: %s", name)
		}
		if errors.Is(err, entry.ErrInvalidName) {
			return fmt.Errorf("invalid entry name: %s", name)
		}
		return err
	}

	fmt.Printf("Removed %s\n", name)
	return nil
}

func runList(ctx context.Context) error {
	s, _, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.List(ctx)
	if err != nil {
		return err
	}

	// Backend iteration order varies; sort for stable output
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	for _, e := range entries {
		fmt.Printf("%s = %s\n", e.Name, e.Value)
	}

	return nil
}

func runPurge(ctx context.Context, args []string) error {
	force := false
	for _, arg := range args {
		if arg == "--force" || arg == "-f" {
			force = true
		}
	}

	s, _, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if !force {
		confirmed, err := confirmPurge(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Exiting without deleting data")
			return nil
		}
	}

	if err := s.Purge(); err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return fmt.Errorf("no briefcase data to purge")
		}
		return err
	}

	fmt.Println("Briefcase data purged successfully")
	return nil
}

// confirmPurge prompts for a y/n answer and reports whether the user
// confirmed. Only a case-insensitive "y" confirms.
func confirmPurge(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "Are you sure you want to delete all briefcase data? (y/n) ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
