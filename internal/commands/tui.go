package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd implements the tui command.
type TUICmd struct{}

func (c *TUICmd) Name() string       { return "tui" }
func (c *TUICmd) Aliases() []string  { return []string{"ui"} }
func (c *TUICmd) Synopsis() string   { return "Interactive task list" }
func (c *TUICmd) Usage() string      { return "todo tui" }
func (c *TUICmd) NeedsService() bool { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The screen drives the store directly, so it needs a local session.
	sess, ok := svc.(*service.Session)
	if !ok {
		fmt.Fprintln(errOut, "error: tui requires local storage (unset --remote)")
		return exitcode.UserError
	}

	if err := tui.Run(ctx, tui.New(sess.Store(), sess.Persist, cfg.Log())); err != nil {
		return reportError(errOut, err)
	}
	return exitcode.Success
}
