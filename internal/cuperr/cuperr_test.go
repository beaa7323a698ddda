package cuperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(UnknownElement, "element %s not found", "e9")
	if KindOf(err) != UnknownElement {
		t.Errorf("KindOf = %s", KindOf(err))
	}
	wrapped := fmt.Errorf("dispatch: %w", err)
	if KindOf(wrapped) != UnknownElement {
		t.Errorf("KindOf through wrap = %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("plain error has a kind")
	}
}

func TestIsMatchesBareKind(t *testing.T) {
	err := Wrap(PlatformTimeout, errors.New("deadline"), "gdbus timed out")
	if !errors.Is(err, KindError(PlatformTimeout)) {
		t.Error("errors.Is failed against bare kind")
	}
	if errors.Is(err, KindError(PlatformFailure)) {
		t.Error("errors.Is matched the wrong kind")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PlatformFailure, cause, "helper failed")
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

func TestErrorMessage(t *testing.T) {
	if got := New(InvalidParams, "missing value").Error(); got != "missing value" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&Error{Kind: StaleSnapshot}).Error(); got != string(StaleSnapshot) {
		t.Errorf("bare kind Error() = %q", got)
	}
}
