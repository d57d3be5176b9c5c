package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/keyring"
	"github.com/julianstephens/tablebot/internal/logger"
)

type DebugCmd struct {
	Paths  *DebugPathsCmd  `cmd:"" help:"Show config and log file paths."`
	Config *DebugConfigCmd `cmd:"" help:"Dump the resolved configuration as YAML."`
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"config_dir":  ctx.Config.ConfigDir,
		"config_file": filepath.Join(ctx.Config.ConfigDir, constants.DefaultConfigFile),
		"log_file":    logger.Path(ctx.Config.ConfigDir),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Fprintln(ctx.out(), string(jsonBytes))
	return nil
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if cfg.Token != "" {
		cfg.Token = keyring.Mask(cfg.Token)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Fprint(ctx.out(), string(out))
	fmt.Fprintf(ctx.out(), "# token source: %s\n", cfg.TokenSource)
	return nil
}
