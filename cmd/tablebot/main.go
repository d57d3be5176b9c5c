package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tablebot/internal/cli"
	"github.com/julianstephens/tablebot/internal/config"
	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/errors"
	"github.com/julianstephens/tablebot/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigDir  string        `help:"Directory holding config.yaml and logs." type:"path" default:"${config_dir}"`
	EnvFile    string        `help:"Dotenv file read before the environment." default:".env"`
	BaseURL    string        `help:"Backend base URL."`
	Token      string        `help:"Bearer token for the backend."`
	Timeout    time.Duration `help:"Per-request timeout."`
	Restaurant string        `help:"Restaurant name used in booking lookups."`
	Debug      bool          `help:"Enable debug logging."`

	Chat      cli.ChatCmd      `cmd:"" help:"Start the booking assistant." default:"1"`
	Ask       cli.AskCmd       `cmd:"" help:"Send one message and print the reply."`
	TokenCmd  cli.TokenCmd     `cmd:"" name:"token" help:"Manage the bearer token in the OS keyring."`
	Config    cli.ConfigCmd    `cmd:"" help:"Manage the config file."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	DevServer cli.DevServerCmd `cmd:"" help:"Run a local development backend."`
	DebugCmd  cli.DebugCmd     `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal booking assistant for The Hungry Unicorn"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"config_dir":    constants.DefaultConfigDir,
			"dev_addr":      constants.DefaultDevAddr,
			"dev_database":  constants.DefaultDevDatabase,
			"dev_rpm":       fmt.Sprint(constants.DevRequestsPerMinute),
			"default_party": fmt.Sprint(constants.DefaultPartySize),
		},
	)

	command := ctx.Command()

	cfg, err := config.Load(config.LoadOptions{
		ConfigDir: CLI.ConfigDir,
		EnvFile:   CLI.EnvFile,
	})
	if err != nil {
		errors.Fatal(err)
	}
	cfg.Resolve(config.Overrides{
		BaseURL:    CLI.BaseURL,
		Token:      CLI.Token,
		Timeout:    CLI.Timeout,
		Restaurant: CLI.Restaurant,
		Debug:      CLI.Debug,
	}, usesKeyringToken(command))

	// The TUI owns the terminal, so chat logs only to the file
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir,
		Stderr:    command != "chat",
	}); err != nil {
		errors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	logger.Debug("Running command", "command", command, "token_source", cfg.TokenSource)
	errors.Fatal(ctx.Run(&cli.Context{Config: cfg}))
}

// usesKeyringToken reports whether the command should pick up a stored token.
// The token subcommands read the keyring themselves.
func usesKeyringToken(command string) bool {
	return !strings.HasPrefix(command, "token")
}
