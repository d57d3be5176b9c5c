package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tablebot/internal/keyring"
)

type TokenCmd struct {
	Set    TokenSetCmd    `cmd:"" help:"Store the backend bearer token in the OS keyring."`
	Get    TokenGetCmd    `cmd:"" help:"Show the stored token (masked)."`
	Delete TokenDeleteCmd `cmd:"" help:"Remove the stored token."`
	Status TokenStatusCmd `cmd:"" help:"Check keyring availability and token source."`
}

// TokenSetCmd stores the bearer token in the OS keyring
type TokenSetCmd struct {
	Token string `arg:"" optional:"" help:"Bearer token. Read from stdin when omitted."`
}

func (cmd *TokenSetCmd) Run(ctx *Context) error {
	token := cmd.Token
	if token == "" {
		fmt.Fprint(ctx.out(), "Token: ")
		line, err := bufio.NewReader(ctx.in()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(line)
	}

	if err := keyring.SetToken(token); err != nil {
		return err
	}

	fmt.Fprintln(ctx.out(), "✓ Token stored successfully in OS keyring")
	return nil
}

// TokenGetCmd prints the stored token with most of it masked
type TokenGetCmd struct{}

func (cmd *TokenGetCmd) Run(ctx *Context) error {
	token, err := keyring.GetToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no token found in keyring. Use 'tablebot token set' to store one")
		}
		return fmt.Errorf("failed to retrieve token from keyring: %w", err)
	}

	fmt.Fprintln(ctx.out(), keyring.Mask(token))
	return nil
}

// TokenDeleteCmd removes the bearer token from the OS keyring
type TokenDeleteCmd struct{}

func (cmd *TokenDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no token found in keyring")
		}
		return err
	}

	fmt.Fprintln(ctx.out(), "✓ Token deleted from OS keyring")
	return nil
}

// TokenStatusCmd reports keyring availability and where the active token comes from
type TokenStatusCmd struct{}

func (cmd *TokenStatusCmd) Run(ctx *Context) error {
	w := ctx.out()
	if !keyring.IsAvailable() {
		fmt.Fprintln(w, "❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Fprintln(w, "✓ OS keyring is available")

	if _, err := keyring.GetToken(); err == nil {
		fmt.Fprintln(w, "✓ Token is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(w, "ℹ No token stored in keyring")
	}
	fmt.Fprintf(w, "ℹ Active token source: %s\n", ctx.Config.TokenSource)
	return nil
}
