package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/view"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
type ClearCmd struct {
	yes bool
}

// SetYes sets the confirmation flag (for testing).
func (c *ClearCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *ClearCmd) Name() string       { return "clear" }
func (c *ClearCmd) Aliases() []string  { return []string{"clear-completed"} }
func (c *ClearCmd) Synopsis() string   { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string      { return "todo clear [--yes]" }
func (c *ClearCmd) NeedsService() bool { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	counts := view.Count(tasks)
	if counts.Completed == 0 {
		fmt.Fprintln(errOut, "error: no completed tasks to clear")
		return exitcode.UserError
	}

	if !c.yes {
		fmt.Fprintf(errOut, "error: confirmation required to delete %d completed task(s) (use --yes)\n", counts.Completed)
		return exitcode.UserError
	}

	n, err := svc.ClearCompleted(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (removed %d)\n", n)
	}
	return exitcode.Success
}
