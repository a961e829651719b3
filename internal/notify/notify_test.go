package notify

import (
	"errors"
	"fmt"
	"testing"

	"souq-gateway/internal/domain"
	"souq-gateway/internal/events"
	"souq-gateway/internal/upstream"
)

func TestErrorMessageClassification(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&upstream.StatusError{Code: 404}, MsgNotFound},
		{&upstream.StatusError{Code: 400}, MsgBadRequest},
		{&upstream.StatusError{Code: 422}, MsgBadRequest},
		{&upstream.StatusError{Code: 500}, MsgServerError},
		{&upstream.StatusError{Code: 503}, MsgServerError},
		{fmt.Errorf("wrap: %w", &upstream.StatusError{Code: 404}), MsgNotFound},
		{domain.ErrSignInRequired, MsgSignInRequired},
		{errors.New("dial tcp: refused"), MsgGeneric},
	}
	for _, c := range cases {
		if got := ErrorMessage(c.err); got != c.want {
			t.Fatalf("ErrorMessage(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestBusNotifierPublishesToast(t *testing.T) {
	bus := events.New()
	var toasts []events.Toast
	bus.Subscribe(func(e events.Event) {
		if toast, ok := e.(events.Toast); ok {
			toasts = append(toasts, toast)
		}
	})

	n := NewBusNotifier(bus)
	n.Success("ok")
	n.Error("nope")

	if len(toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Level != "success" || toasts[0].Message != "ok" {
		t.Fatalf("unexpected first toast: %+v", toasts[0])
	}
	if toasts[1].Level != "error" || toasts[1].Message != "nope" {
		t.Fatalf("unexpected second toast: %+v", toasts[1])
	}
}
