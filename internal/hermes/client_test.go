package hermes

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func TestWaitHandlers_BlocksUntilHandlerReturns(t *testing.T) {
	c := &Client{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	started := make(chan struct{})
	release := make(chan struct{})
	cb := c.track(func(subject string, data []byte) {
		close(started)
		<-release
	})
	go cb(&nats.Msg{Subject: SubjectEntrySubmitted})
	<-started

	if c.waitHandlers(20 * time.Millisecond) {
		t.Fatal("expected wait to time out while handler is running")
	}
	close(release)
	if !c.waitHandlers(time.Second) {
		t.Fatal("expected wait to succeed once handler returned")
	}
}

func TestWaitHandlers_NoneRunning(t *testing.T) {
	c := &Client{}
	if !c.waitHandlers(0) {
		t.Error("expected immediate success with no handlers")
	}
}
