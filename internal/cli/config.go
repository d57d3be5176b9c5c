package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/tablebot/internal/constants"
)

type ConfigCmd struct {
	Save ConfigSaveCmd `cmd:"" help:"Write the current settings (including flags) to config.yaml. The token is never written."`
}

type ConfigSaveCmd struct{}

func (cmd *ConfigSaveCmd) Run(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid configuration: %w", err)
	}
	if err := ctx.Config.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Fprintf(ctx.out(), "✓ Configuration saved to %s\n", filepath.Join(ctx.Config.ConfigDir, constants.DefaultConfigFile))
	return nil
}
