package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "filestore.read",
		Kind: KindStorage,
		Path: "/tmp/state.json",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindStorage {
		t.Fatalf("expected kind %s", KindStorage)
	}
	if !strings.Contains(err.Error(), "path=/tmp/state.json") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestIsKind(t *testing.T) {
	err := &OpError{
		Op:   "config.load",
		Kind: KindInvalidConfig,
		Err:  ErrInvalidConfig,
	}

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindNotFound) {
		t.Fatalf("expected IsKind to reject other kinds")
	}
	if IsKind(errors.New("plain"), KindInvalidConfig) {
		t.Fatalf("expected plain errors to never match")
	}
}

func TestOpErrorNilReceiver(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("expected <nil>, got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
