package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/cara/internal/config"
	clierrors "github.com/ariel-frischer/cara/internal/errors"
	"github.com/ariel-frischer/cara/internal/group"
)

// Exit codes for the cara CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure reading history or writing output
	ExitFailure = 1

	// ExitInvalidConfig indicates an invalid or missing configuration
	ExitInvalidConfig = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingRepository indicates the repository or input file is missing
	ExitMissingRepository = 4
)

// ExitError carries a specific process exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// classify turns pipeline errors into CLI errors with remediation.
func classify(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var notFound *config.NotFoundError
	var valueErr *config.ValueError
	switch {
	case errors.As(err, &notFound):
		return clierrors.ConfigFileNotFound(notFound.Path)
	case group.IsInvalidUnit(err):
		return clierrors.InvalidGroupBy(err)
	case errors.As(err, &valueErr):
		return clierrors.InvalidConfigValue(err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}

// ExitCodeFor maps an error returned by Execute to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch classify(err).Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitInvalidConfig
	case clierrors.Prerequisite:
		return ExitMissingRepository
	default:
		return ExitFailure
	}
}

// printError writes err to w with remediation steps. ExitError values
// were already reported by the command that returned them.
func printError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	clierrors.FprintError(w, classify(err))
}
