package extract

import (
	"errors"
	"fmt"

	"github.com/flarebyte/arcscan/internal/pipeline"
)

const (
	exitCodeSuccess     = 0
	exitCodeExecErr     = 1
	exitCodeFailures    = 2
	exitCodeInterrupted = 130
)

type runExitError struct {
	code int
	msg  string
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }

// evaluateRunExit maps the outcome of a run to the command error. Per-archive
// failures only fail the command when failOnError is set.
func evaluateRunExit(rep pipeline.Report, runErr, closeErr error, failOnError bool) error {
	if runErr != nil {
		if interrupted(runErr) {
			return runExitError{code: exitCodeInterrupted, msg: "interrupted"}
		}
		return errors.Join(runErr, closeErr)
	}
	if closeErr != nil {
		return runExitError{code: exitCodeExecErr, msg: fmt.Sprintf("write tables: %v", closeErr)}
	}
	if failOnError && rep.Failed() {
		return runExitError{code: exitCodeFailures, msg: fmt.Sprintf("archive failures: %d", len(rep.Failures))}
	}
	return nil
}
