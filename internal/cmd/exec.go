package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/treehouse/internal/log"
)

// RunContext runs name with args in dir. On failure the error carries
// the command's trimmed stderr when there is any.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, name, args, false)
	return err
}

// OutputContext runs name with args in dir and returns stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, name, args, true)
}

// Passthrough runs name with args in dir, connecting stdin/stdout/stderr
// to the terminal. env entries are appended to the inherited environment.
func Passthrough(ctx context.Context, dir string, env []string, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stderr
	c.Stderr = os.Stderr
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}
	err := c.Run()
	done(time.Since(start))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func run(ctx context.Context, dir, name string, args []string, capture bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	if capture {
		c.Stdout = &stdout
	}
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
