package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/export"
	"todo/internal/service"
	"todo/internal/task"
	"todo/internal/view"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format  string
	filter  string
	outPath string
}

// SetOptions sets the flag values (for testing).
func (c *ExportCmd) SetOptions(format, filter, outPath string) {
	c.format, c.filter, c.outPath = format, filter, outPath
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as JSON, CSV or PDF" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format json|csv|pdf] [--filter all|active|completed] [--out <path>]"
}
func (c *ExportCmd) NeedsService() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.outPath, "out", "", "")
	fs.StringVar(&c.outPath, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format, err := export.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	filter, err := task.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}
	p := view.Project(tasks, filter)

	// No --out (or "-") writes to stdout
	if c.outPath == "" || c.outPath == "-" {
		if err := export.Write(out, format, p); err != nil {
			fmt.Fprintf(errOut, "error: export failed: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	f, err := os.Create(c.outPath)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := export.Write(f, format, p); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.BackendError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.BackendError
	}

	cfg.Log().Info("exported tasks",
		zap.String("path", c.outPath),
		zap.String("format", string(format)),
		zap.Int("tasks", len(p.Rows)))
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (%d tasks written to %s)\n", len(p.Rows), c.outPath)
	}
	return exitcode.Success
}
