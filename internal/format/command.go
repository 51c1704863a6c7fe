package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

const maxStderr = 512

// Command runs an external formatter that reads source on stdin and writes
// the formatted source to stdout. Args may reference $LANG.
type Command struct {
	Name    string
	Path    string
	Args    []string
	Timeout time.Duration
}

func (c *Command) Format(ctx context.Context, lang, content string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, expandArgs(c.Args, map[string]string{"LANG": lang})...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = time.Second
	cmd.Stdin = strings.NewReader(content)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code, err := exitCode(cmd.Run())
	if ctx.Err() != nil {
		return "", fmt.Errorf("%s: %w", c.Name, ctx.Err())
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}
	if code != 0 {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderr {
			msg = msg[:maxStderr] + "..."
		}
		return "", &ExitError{Name: c.Name, Code: code, Stderr: msg}
	}
	if stdout.Len() == 0 {
		return "", fmt.Errorf("%s: %w", c.Name, ErrEmptyOutput)
	}
	return stdout.String(), nil
}
