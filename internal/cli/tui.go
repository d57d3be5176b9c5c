package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tablebot/internal/controller"
	"github.com/julianstephens/tablebot/internal/logger"
	"github.com/julianstephens/tablebot/internal/models"
	"github.com/julianstephens/tablebot/internal/tui"
)

type ChatCmd struct {
	Mode string `help:"Open with an option already picked (availability, create, get, update, cancel)."`
}

func (c *ChatCmd) Run(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	ctrl, err := c.controller(ctx)
	if err != nil {
		return err
	}
	logger.Info("Starting chat", "base_url", ctx.Config.BaseURL, "token_source", ctx.Config.TokenSource, "mode", c.Mode)

	p := tea.NewProgram(tui.NewModel(context.Background(), ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

// controller starts the conversation, applying --mode when given
func (c *ChatCmd) controller(ctx *Context) (*controller.Controller, error) {
	ctrl := ctx.NewController()
	if c.Mode == "" {
		return ctrl, nil
	}
	mode, err := models.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	if err := ctrl.SelectOption(mode); err != nil {
		return nil, fmt.Errorf("cannot open chat in %s mode: %w", mode, err)
	}
	return ctrl, nil
}
