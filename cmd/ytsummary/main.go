package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/foxseedlab/ytsummary/internal/pipeline"
	"github.com/foxseedlab/ytsummary/internal/video"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks bad arguments or flags.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ue), errors.Is(err, video.ErrInvalidID), errors.Is(err, pipeline.ErrInvalidSuffix):
		return ExitUsage
	default:
		return ExitFailure
	}
}
