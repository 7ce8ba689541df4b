package command

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/trilium-cli/internal/cli/config"
	"github.com/yndnr/trilium-cli/internal/cli/connection"
	"github.com/yndnr/trilium-cli/internal/cli/output"
	"github.com/yndnr/trilium-cli/internal/core/domain"
	"github.com/yndnr/trilium-cli/internal/core/service"
	"github.com/yndnr/trilium-cli/internal/storage/workspace"
	"github.com/yndnr/trilium-cli/internal/telemetry/logger"
	"github.com/yndnr/trilium-cli/internal/telemetry/metric"
)

const runtimeKey = "runtime"

// runtime is the per-invocation state built by the Before hook.
type runtime struct {
	ctx       context.Context
	cfg       *config.CLIConfig
	store     *workspace.Store
	conns     *connection.Manager
	metrics   *metric.Registry
	formatter output.Formatter
	requestID string
	command   string
	started   time.Time
}

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:                 "trilium-cli",
		Usage:                "Manage TriliumNext notes through ETAPI",
		HideVersion:          true,
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Commands: []*cli.Command{
			AppInfoCommand(),
			PrintConfigCommand(),
			EnsureRootCommand(),
			CreateNoteCommand(),
			GetNoteCommand(),
			GetContentCommand(),
			SetContentCommand(),
			AppendNoteCommand(),
			CreateLogEntryCommand(),
			DeleteNoteCommand(),
			SearchNotesCommand(),
			ListChildrenCommand(),
			RenameNoteCommand(),
			MoveNoteCommand(),
			ResolvePathCommand(),
			CreateFolderCommand(),
			VersionCommand(),
		},
		Before:       setup,
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return domain.ErrUnknownCommand.WithDetailsf("%q", c.Args().First())
			}
			return cli.ShowAppHelp(c)
		},
	}
	for _, cmd := range app.Commands {
		cmd.OnUsageError = usageError
	}
	return app
}

// globalFlags returns the global CLI flags. Connection flags carry no
// defaults so that unset flags never shadow the config file or the
// TRILIUM_* environment.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "TriliumNext server URL (e.g., http://127.0.0.1:8080) [$TRILIUM_BASE_URL]",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "ETAPI token [$TRILIUM_API_TOKEN]",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default: user config dir/trilium-cli/config.yaml when present)",
			EnvVars: []string{"TRILIUM_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Workspace state file (default: " + workspace.DefaultPath + ") [$TRILIUM_STORE_PATH]",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: json, yaml",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log every ETAPI request to stderr",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format on stderr: text, json",
		},
		&cli.StringFlag{
			Name:  "ca-file",
			Usage: "Extra CA certificate file or directory for https servers",
		},
		&cli.Float64Flag{
			Name:  "rate-limit",
			Usage: "Maximum ETAPI requests per second (0 = unlimited)",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics to this file on exit (node_exporter textfile format)",
		},
	}
}

// flagKeys maps global flags onto configuration keys.
var flagKeys = map[string]string{
	"base-url":     "base_url",
	"token":        "api_token",
	"store":        "store_path",
	"output":       "output",
	"log-format":   "log.format",
	"ca-file":      "ca_file",
	"metrics-file": "metrics_file",
}

// GlobalFlags holds the global flags the user set explicitly, keyed like
// the configuration file.
type GlobalFlags map[string]any

// ParseGlobalFlags extracts the explicitly set global flags from context.
func ParseGlobalFlags(c *cli.Context) GlobalFlags {
	flags := GlobalFlags{}
	for name, key := range flagKeys {
		if c.IsSet(name) {
			flags[key] = c.String(name)
		}
	}
	if c.IsSet("rate-limit") {
		flags["rate_limit"] = c.Float64("rate-limit")
	}
	if c.Bool("verbose") {
		flags["log.level"] = "debug"
	}
	return flags
}

// setup loads configuration and builds the per-invocation runtime. It
// never contacts the server.
func setup(c *cli.Context) error {
	started := time.Now()

	cfg, err := config.Load(c.String("config"), ParseGlobalFlags(c))
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)
	logger.RegisterSecret(cfg.APIToken)

	requestID := ulid.Make().String()
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, log)
	ctx = logger.WithRequestID(ctx, requestID)
	c.Context = ctx

	format, _ := output.ParseFormat(cfg.Output)
	metrics := metric.NewRegistry()
	rt := &runtime{
		ctx:       ctx,
		cfg:       cfg,
		store:     workspace.Open(cfg.StorePath),
		conns:     connection.NewManager(metrics),
		metrics:   metrics,
		formatter: output.NewFormatter(format),
		requestID: requestID,
		started:   started,
	}
	c.App.Metadata[runtimeKey] = rt

	logger.L(ctx).Debug("configuration loaded",
		"config_file", cfg.ConfigFile,
		"store_path", cfg.StorePath,
		"output", cfg.Output,
	)
	return nil
}

// usageError turns a flag parsing failure into a usage error.
func usageError(c *cli.Context, err error, isSubcommand bool) error {
	return domain.ErrInvalidArgument.WithDetails(err.Error())
}

// getRuntime retrieves the per-invocation runtime from context.
func getRuntime(c *cli.Context) *runtime {
	if rt, ok := c.App.Metadata[runtimeKey].(*runtime); ok {
		return rt
	}
	return nil
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if rt := getRuntime(c); rt != nil {
		return rt.conns
	}
	return nil
}

// EnsureConnected connects with the configured credentials and returns a
// note service bound to the workspace store.
func EnsureConnected(c *cli.Context) (*service.NoteService, error) {
	rt := getRuntime(c)
	if rt == nil {
		return nil, domain.ErrConfig.WithDetails("runtime not initialised")
	}

	if !rt.conns.IsConnected() {
		err := rt.conns.Connect(&connection.Connection{
			BaseURL:    rt.cfg.BaseURL,
			Token:      rt.cfg.APIToken,
			AuthScheme: rt.cfg.AuthScheme,
			CAFile:     rt.cfg.CAFile,
			RateLimit:  rt.cfg.RateLimit,
		})
		if err != nil {
			return nil, err
		}
		logger.L(rt.ctx).Debug("connection configured", "base_url", rt.cfg.BaseURL)
	}
	return service.NewNoteService(rt.conns.Client(), rt.store), nil
}

// actionFunc is a command body. It returns the document to print.
type actionFunc func(c *cli.Context, rt *runtime) (any, error)

// action adapts fn to urfave/cli: it rejects positional arguments, runs
// fn and prints its result to the app writer.
func action(fn actionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt := getRuntime(c)
		if rt == nil {
			return domain.ErrConfig.WithDetails("runtime not initialised")
		}
		rt.command = c.Command.Name

		if c.NArg() > 0 {
			return domain.ErrInvalidArgument.WithDetailsf("%s: unexpected argument %q", c.Command.Name, c.Args().First())
		}

		result, err := fn(c, rt)
		if err != nil {
			return err
		}
		return rt.formatter.Format(c.App.Writer, result)
	}
}

// target reads the --id/--path pair of a command.
func target(c *cli.Context) service.Target {
	return service.Target{ID: c.String("id"), Path: c.String("path")}
}

// targetFlags are the --id and --path flags shared by single-note commands.
func targetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "Note ID"},
		&cli.StringFlag{Name: "path", Usage: "Title path; a leading / starts at the root note, otherwise at the workspace root"},
	}
}

// requireString returns the named flag's value or a missing-argument error
// phrased like "<command> requires --<flag> <string>".
func requireString(c *cli.Context, name string) (string, error) {
	v := c.String(name)
	if v == "" {
		return "", domain.ErrMissingArgument.WithDetailsf("%s requires --%s <string>", c.Command.Name, name)
	}
	return v, nil
}
