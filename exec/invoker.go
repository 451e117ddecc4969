package exec

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/vcnkl/xbuild/models"
)

// Invocation is the raw outcome of one toolchain run: exit status, captured
// combined output, and an error classifying any failure.
type Invocation struct {
	ExitCode int
	Output   string
	Duration time.Duration
	Err      error
}

// Invoker runs the external build command for one target triple, streaming
// combined output to console while capturing it. It blocks until the
// process has exited and its output streams are drained.
type Invoker interface {
	Invoke(ctx context.Context, triple models.Triple, console io.Writer) *Invocation
}

// ToolInvoker drives a real toolchain such as cargo. The composed command
// line is <tool> <args...> [--release] --target <triple>.
type ToolInvoker struct {
	Tool    string
	Args    []string
	Release bool
	Env     []string
	Timeout time.Duration
}

func (t *ToolInvoker) argv(triple models.Triple) []string {
	argv := append([]string{t.Tool}, t.Args...)
	if t.Release {
		argv = append(argv, "--release")
	}
	argv = append(argv, "--target", triple.String())
	return argv
}

// Command returns the command line for one triple, quoted for display.
func (t *ToolInvoker) Command(triple models.Triple) string {
	argv := t.argv(triple)

	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if needsQuoting(arg) {
			quoted[i] = shellQuote(arg)
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}

func (t *ToolInvoker) Invoke(ctx context.Context, triple models.Triple, console io.Writer) *Invocation {
	start := time.Now()

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	out := io.Writer(&buf)
	if console != nil {
		out = io.MultiWriter(&buf, console)
	}

	argv := t.argv(triple)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = t.Env
	cmd.Stdout = out
	cmd.Stderr = out
	// Own process group, so a timed-out build can be killed together with
	// any children it spawned.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	inv := &Invocation{}

	if err := cmd.Start(); err != nil {
		inv.ExitCode = -1
		inv.Err = &InvocationError{Tool: t.Tool, Err: err}
		inv.Duration = time.Since(start)
		return inv
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		// Kill the whole group, then wait for Wait to return: only after
		// that is the output fully drained and the process gone, so the
		// next target cannot overlap with a hung build.
		syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		<-done
		inv.ExitCode = -1
		inv.Err = errors.Wrapf(ctx.Err(), "%s invocation aborted", t.Tool)
	case err := <-done:
		inv.ExitCode = cmd.ProcessState.ExitCode()
		if err != nil {
			inv.Err = &ExecutionError{Tool: t.Tool, ExitCode: inv.ExitCode}
		}
	}

	inv.Output = buf.String()
	inv.Duration = time.Since(start)
	return inv
}

func needsQuoting(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\n'\"$&|;<>()*?[]#~%")
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
