// Package cli is the contactbook command line: the TUI by default, plus
// scriptable subcommands over the same stores.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/config"
	"github.com/Makepad-fr/contactbook/internal/logging"
	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/store/jsonstore"
	"github.com/Makepad-fr/contactbook/internal/store/sqlitestore"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Durable scope names.
const (
	ScopeContacts = "contacts"
	ScopeTasks    = "tasks"
)

// usageError marks a failure caused by bad arguments.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// env is what every subcommand shares once flags and config are loaded.
type env struct {
	configPath string
	envFile    string
	dataDir    string
	storeKind  string
	theme      string
	logLevel   string
	start      string

	cfg     *config.Config
	log     *zap.Logger
	db      *sqlitestore.DB
	memory  map[string]*store.Memory
	closers []io.Closer
}

func (e *env) load(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := config.Load(e.configPath, e.envFile, func(c *config.Config) {
		if flags.Changed("data-dir") {
			c.DataDir = e.dataDir
		}
		if flags.Changed("store") {
			c.Store = e.storeKind
		}
		if flags.Changed("theme") {
			c.UI.Theme = e.theme
		}
		if flags.Changed("log-level") {
			c.Logging.Level = e.logLevel
		}
		if flags.Changed("start") {
			c.StartRoute = e.start
		}
	})
	if err != nil {
		return usageError{err}
	}
	ui.SetTheme(cfg.UI.Theme)
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	e.cfg, e.log = cfg, log
	e.log.Debug("config", zap.String("data_dir", cfg.DataDir), zap.String("store", cfg.Store))
	return nil
}

// durable opens scope on the configured backend.
func (e *env) durable(scope string) (store.Durable, error) {
	switch e.cfg.Store {
	case config.StoreMemory:
		if e.memory == nil {
			e.memory = map[string]*store.Memory{}
		}
		m, ok := e.memory[scope]
		if !ok {
			m = store.NewMemory()
			e.memory[scope] = m
		}
		return m.Durable(), nil
	case config.StoreSQLite:
		if e.db == nil {
			db, err := sqlitestore.Open(filepath.Join(e.cfg.DataDir, "contactbook.db"))
			if err != nil {
				return nil, err
			}
			e.db = db
			e.closers = append(e.closers, db)
		}
		return e.db.Scope(scope), nil
	default:
		return jsonstore.Open(e.cfg.DataDir, scope)
	}
}

func (e *env) close() {
	for _, c := range e.closers {
		if err := c.Close(); err != nil && e.log != nil {
			e.log.Warn("close", zap.Error(err))
		}
	}
	e.closers = nil
	if e.log != nil {
		_ = e.log.Sync()
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "contactbook",
		Short: "Contacts and tasks in your terminal",
		Long: `contactbook keeps a contact list and a task list behind a login.

Run without arguments to start the interactive interface.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q", args[0])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTUI(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "config file (default ~/.contactbook/config.yaml)")
	pf.StringVar(&e.envFile, "env-file", ".env", "dotenv file with CONTACTBOOK_* overrides")
	pf.StringVar(&e.dataDir, "data-dir", "", "directory holding stores, users and logs")
	pf.StringVar(&e.storeKind, "store", "", "durable backend: json, sqlite or memory")
	pf.StringVar(&e.theme, "theme", "", "classic, neon or mono")
	pf.StringVar(&e.logLevel, "log-level", "", "debug, info, warn or error")
	root.Flags().StringVar(&e.start, "start", "", "route to open first")

	root.AddCommand(
		newContactsCmd(e),
		newTasksCmd(e),
		newUsersCmd(e),
		newRoutesCmd(),
		newConfigCmd(e),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	e := &env{}
	defer e.close()
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// parseIndex reads a 1-based list position.
func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("not a number: %s", s)
	}
	if i < 1 || i > n {
		return 0, usagef("index out of range: have %d, got %d", n, i)
	}
	return i - 1, nil
}
