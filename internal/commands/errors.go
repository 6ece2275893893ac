package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/backend/remote"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
)

// reportError prints err and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(errOut, "error: %s\n", verr.Message)
		return exitcode.UserError
	case errors.Is(err, ErrTaskRefRequired):
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	case errors.Is(err, ErrInvalidTaskRef),
		errors.Is(err, ErrTaskOutOfRange),
		errors.Is(err, ErrNoMatch),
		errors.Is(err, ErrAmbiguousRef),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, store.ErrBusy):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, remote.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.ConfigError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
