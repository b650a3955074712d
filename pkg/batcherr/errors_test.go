package batcherr

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestTransportErrorMessageContainsCodeArgvStderr(t *testing.T) {
	err := &TransportError{Code: 7, Argv: []string{"sbatch", "--parsable"}, Stderr: "permission denied"}
	msg := err.Error()

	if !strings.Contains(msg, strconv.Itoa(7)) {
		t.Errorf("expected message to contain code 7, got %q", msg)
	}
	if !strings.Contains(msg, "sbatch") || !strings.Contains(msg, "--parsable") {
		t.Errorf("expected message to contain argv, got %q", msg)
	}
	if !strings.Contains(msg, "permission denied") {
		t.Errorf("expected message to contain stderr, got %q", msg)
	}
}

func TestInvalidTimeErrorUnwraps(t *testing.T) {
	err := &InvalidTimeError{Input: "xvi", Cause: ErrInvalidTime}
	if !errors.Is(err, ErrInvalidTime) {
		t.Error("expected InvalidTimeError to unwrap to ErrInvalidTime")
	}
}

func TestSubmitErrorUnwraps(t *testing.T) {
	err := &SubmitError{Cause: errors.New("boom")}
	if !errors.Is(err, ErrSubmit) {
		t.Error("expected SubmitError to unwrap to ErrSubmit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected message to contain cause, got %q", err.Error())
	}
}
