package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tablebot/internal/controller"
	"github.com/julianstephens/tablebot/internal/interpreter"
	"github.com/julianstephens/tablebot/internal/models"
)

// AskCmd sends one message and prints the agent's reply with any time chips.
// With --date the availability query is sent instead of free text.
type AskCmd struct {
	Message []string `arg:"" optional:"" help:"Message to send."`
	Date    string   `help:"Check availability on this date (YYYY-MM-DD) instead of sending a message."`
	Party   int      `help:"Party size for --date." default:"${default_party}"`
	Format  string   `help:"Output format." enum:"text,json,yaml" default:"text" short:"f"`
}

type askResult struct {
	Reply string            `json:"reply" yaml:"reply"`
	Chips *models.ChipOffer `json:"chips,omitempty" yaml:"chips,omitempty"`
}

func (cmd *AskCmd) Run(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctrl := ctx.NewController()
	var err error
	if cmd.Date != "" {
		err = ctrl.SubmitAvailability(context.Background(), cmd.Date, cmd.Party)
	} else {
		err = ctrl.Submit(context.Background(), strings.Join(cmd.Message, " "), false)
	}
	if errors.Is(err, controller.ErrEmptyInput) {
		return errors.New("message is empty")
	}
	if err != nil {
		return err
	}

	state := ctrl.State()
	res := askResult{Chips: state.ChipOffer}
	if n := len(state.Messages); n > 0 {
		res.Reply = state.Messages[n-1].Text
	}
	return cmd.print(ctx, res)
}

func (cmd *AskCmd) print(ctx *Context, res askResult) error {
	w := ctx.out()
	switch cmd.Format {
	case "json":
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(w, string(b))
	case "yaml":
		b, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprint(w, string(b))
	default:
		fmt.Fprintln(w, res.Reply)
		if res.Chips != nil {
			times := make([]string, len(res.Chips.Times))
			for i, t := range res.Chips.Times {
				times[i] = interpreter.HumanTime(t)
			}
			fmt.Fprintf(w, "\nTimes on %s for %d: %s\n",
				interpreter.PrettyDate(res.Chips.Date), res.Chips.PartySize, strings.Join(times, ", "))
		}
	}
	return nil
}
