// Package cli holds the kong command implementations.
package cli

import (
	"io"
	"os"

	"github.com/julianstephens/tablebot/internal/api"
	"github.com/julianstephens/tablebot/internal/config"
	"github.com/julianstephens/tablebot/internal/controller"
)

type Context struct {
	Config config.Config
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
	// In is read by prompts. Defaults to os.Stdin.
	In io.Reader
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Client builds a backend client from the resolved configuration
func (c *Context) Client() *api.Client {
	return api.New(c.Config.BaseURL,
		api.WithToken(c.Config.Token),
		api.WithTimeout(c.Config.Timeout),
		api.WithRestaurant(c.Config.Restaurant),
	)
}

// NewController starts a fresh conversation against the configured backend
func (c *Context) NewController() *controller.Controller {
	return controller.New(c.Client())
}
