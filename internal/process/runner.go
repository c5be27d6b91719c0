package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"
	"webrecon/internal/log"
)

var (
	ErrToolNotFound = errors.New("tool not found")
	ErrTimeout      = errors.New("tool timed out")
)

const waitDelay = 500 * time.Millisecond

// Result is what callers get back from an external tool. Stderr is kept
// for diagnostics only.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs an external command and captures its output. A non-zero exit
// is reported through Result.ExitCode, not as an error.
type Runner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (Result, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Tools that fork keep the pipes open after the kill; stop waiting on them.
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err = cmd.Run()

	log.Logger.Debug("external tool finished",
		zap.String("tool", name),
		zap.Strings("args", args),
		zap.Duration("duration", time.Since(start)),
		zap.Int("stdout_bytes", stdout.Len()),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		// Output captured before the kill is discarded.
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return Result{ExitCode: -1}, fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, name)
		}
		return Result{ExitCode: -1}, fmt.Errorf("%s: %w", name, ctxErr)
	}

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return Result{ExitCode: -1}, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return res, nil
}
