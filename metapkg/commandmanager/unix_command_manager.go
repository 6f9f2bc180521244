package commandmanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type UnixCommandManager struct {
	Logger logrus.FieldLogger
}

func (u *UnixCommandManager) Run(ctx context.Context, config CommandConfig) (CommandResult, error) {
	return u.RunLocal(ctx, config)
}

func (u *UnixCommandManager) RunLocal(ctx context.Context, config CommandConfig) (CommandResult, error) {
	start := time.Now()
	u.logger().WithFields(logrus.Fields{
		"command": config.Command,
		"args":    config.Args,
	}).Debug("Executing command")

	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	if len(config.Env) > 0 {
		cmd.Env = append(os.Environ(), config.Env...)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Command:   config.String(),
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		ExitCode:  getExitCode(err),
		Duration:  time.Since(start),
		Timestamp: start,
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s: %w", config.Command, ctxErr)
	}

	var exitError *exec.ExitError
	if err != nil && !errors.As(err, &exitError) {
		return result, fmt.Errorf("running %s: %w", config.Command, err)
	}

	u.logger().WithFields(logrus.Fields{
		"command":  config.Command,
		"exitCode": result.ExitCode,
		"duration": result.Duration,
	}).Debug("Command finished")

	return result, nil
}

func (u *UnixCommandManager) logger() logrus.FieldLogger {
	if u.Logger == nil {
		return logrus.StandardLogger()
	}
	return u.Logger
}

func getExitCode(err error) int {
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode()
	}
	return 0
}
