package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

type captureSink struct {
	name      string
	delivered chan domain.Notification
	err       error
}

func newCaptureSink(name string) *captureSink {
	return &captureSink{name: name, delivered: make(chan domain.Notification, 16)}
}

func (s *captureSink) Name() string { return s.name }

func (s *captureSink) Deliver(_ context.Context, n domain.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.delivered <- n
	return nil
}

func waitFor(t *testing.T, ch chan domain.Notification) domain.Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for delivery")
		return domain.Notification{}
	}
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := newCaptureSink("first")
	second := newCaptureSink("second")
	d := NewDispatcher(2, []Sink{first, second}, zerolog.Nop())
	d.Start(ctx)

	d.Notify(domain.Notification{SessionID: "sess_1", Level: domain.NotifySuccess, Title: "Cart", Message: "Item added"})

	got := waitFor(t, first.delivered)
	if got.SessionID != "sess_1" || got.Title != "Cart" {
		t.Fatalf("first sink got wrong notification: %+v", got)
	}
	got = waitFor(t, second.delivered)
	if got.Message != "Item added" {
		t.Fatalf("second sink got wrong notification: %+v", got)
	}
}

func TestDispatcher_SinkFailureDoesNotBlockOthers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broken := newCaptureSink("broken")
	broken.err = errors.New("boom")
	healthy := newCaptureSink("healthy")

	d := NewDispatcher(1, []Sink{broken, healthy}, zerolog.Nop())
	d.Start(ctx)

	d.Notify(domain.Notification{SessionID: "sess_1", Level: domain.NotifyError, Title: "Error"})

	got := waitFor(t, healthy.delivered)
	if got.Title != "Error" {
		t.Fatalf("healthy sink should still receive, got %+v", got)
	}
}

func TestDispatcher_SameSessionKeepsOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := newCaptureSink("ordered")
	d := NewDispatcher(4, []Sink{sink}, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Notify(domain.Notification{SessionID: "sess_1", Message: string(rune('a' + i))})
	}

	for i := 0; i < 5; i++ {
		got := waitFor(t, sink.delivered)
		if got.Message != string(rune('a'+i)) {
			t.Fatalf("delivery %d out of order: got %q", i, got.Message)
		}
	}
}

func TestDispatcher_NotifyNeverBlocks(t *testing.T) {
	// No Start: workers never drain, so the buffer fills and overflow drops.
	d := NewDispatcher(1, nil, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Notify(domain.Notification{SessionID: "sess_1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Notify blocked on a full buffer")
	}
}
