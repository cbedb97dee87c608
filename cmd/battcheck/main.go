package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/charlie0129/battcheck/pkg/check"
	"github.com/charlie0129/battcheck/pkg/provider"
)

const (
	// exitUsage is returned for invalid flags, apart from every check outcome.
	exitUsage = 64
	// exitConfig is returned when the config file or environment is invalid.
	exitConfig = 78
)

// configError is an error in the config file or environment rather than in
// the flags.
type configError struct {
	err error
}

func (e *configError) Error() string {
	return fmt.Sprintf("invalid config: %v", e.err)
}

func (e *configError) Unwrap() error {
	return e.err
}

// exitCodeOf returns the exit code for an error returned by the command.
func exitCodeOf(err error) int {
	var confErr *configError
	if errors.As(err, &confErr) {
		return exitConfig
	}
	return exitUsage
}

func setupLogger(logLevel string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleOutcome(outcome check.Outcome) int {
	if msg := outcome.Message(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	return outcome.ExitCode()
}

func main() {
	var outcome check.Outcome

	cmd := NewCommand(provider.NewSystem(), &outcome)
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeOf(err))
	}

	os.Exit(handleOutcome(outcome))
}
