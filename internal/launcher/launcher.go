package launcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

// Launcher asks the host to open a path with its default application.
type Launcher interface {
	Open(ctx context.Context, path string) error
}

// CommandFunc builds the command that opens path.
type CommandFunc func(ctx context.Context, path string) *exec.Cmd

// OS opens paths with the platform opener (xdg-open, open, start).
type OS struct {
	command CommandFunc
	logger  logger.Logger
}

// NewOS creates a launcher for the current platform.
func NewOS(log logger.Logger) *OS {
	return &OS{
		command: commandFor(runtime.GOOS),
		logger:  log,
	}
}

// WithCommand returns a copy of the launcher that uses cmd to build the
// opener process.
func (o *OS) WithCommand(cmd CommandFunc) *OS {
	cp := *o
	cp.command = cmd
	return &cp
}

// Open checks that path exists and starts the opener without waiting for it.
func (o *OS) Open(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is empty", domain.ErrValidation)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	cmd := o.command(ctx, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", path, err)
	}

	o.logger.Info("path opened on host",
		logger.String("path", path),
		logger.Int("pid", cmd.Process.Pid))

	// Reap the child.
	go func() { _ = cmd.Wait() }()
	return nil
}

func commandFor(goos string) CommandFunc {
	switch goos {
	case "windows":
		return func(_ context.Context, path string) *exec.Cmd {
			return exec.Command("cmd", "/c", "start", "", path)
		}
	case "darwin":
		return func(_ context.Context, path string) *exec.Cmd {
			return exec.Command("open", path)
		}
	default:
		return func(_ context.Context, path string) *exec.Cmd {
			return exec.Command("xdg-open", path)
		}
	}
}
