package main

import (
	"fmt"

	"github.com/dshills/envnotify/internal/broadcast"
	"github.com/dshills/envnotify/internal/log"
	"github.com/dshills/envnotify/internal/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(sender broadcast.Sender, args []string) *cobra.Command {
	return &cobra.Command{
		Use:                "envnotify",
		Short:              "Tell all top-level windows that the system environment variables changed",
		Args:               cobra.NoArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(*cobra.Command, []string) error {
			return runNotify(sender, args)
		},
	}
}

func runNotify(sender broadcast.Sender, args []string) error {
	logger := log.Get()
	if len(args) > 0 {
		logger.Debug("ignoring arguments", zap.Strings("args", args))
	}

	p, err := profile.LoadBuiltin(profile.Environment)
	if err != nil {
		return exitError(1, "failed to load profile: %v", err)
	}
	m, err := p.BroadcastMessage()
	if err != nil {
		return exitError(1, "invalid profile: %v", err)
	}

	// The outcome is reported through the exit code only.
	if err := broadcast.NewNotifier(sender, logger).Notify(m); err != nil {
		return &exitErr{code: 1}
	}
	return nil
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.msg
}

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
