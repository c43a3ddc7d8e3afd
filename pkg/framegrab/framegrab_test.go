package framegrab_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"PokerVision/pkg/framegrab"
)

func TestMailboxOfferThenGrab(t *testing.T) {
	mailbox := framegrab.NewMailbox()
	defer mailbox.Close()

	if dropped := mailbox.Offer([]byte("frame-1")); dropped {
		t.Error("Offer into empty mailbox reported a drop")
	}

	frame, err := mailbox.Grab(context.Background())
	if err != nil {
		t.Fatalf("Grab failed: %v", err)
	}
	if string(frame) != "frame-1" {
		t.Errorf("Expected frame-1, got %s", frame)
	}
}

func TestMailboxOverwriteKeepsLatest(t *testing.T) {
	mailbox := framegrab.NewMailbox()
	defer mailbox.Close()

	mailbox.Offer([]byte("frame-1"))
	if dropped := mailbox.Offer([]byte("frame-2")); !dropped {
		t.Error("Overwriting an unconsumed frame did not report a drop")
	}
	mailbox.Offer([]byte("frame-3"))

	frame, err := mailbox.Grab(context.Background())
	if err != nil {
		t.Fatalf("Grab failed: %v", err)
	}
	if string(frame) != "frame-3" {
		t.Errorf("Expected latest frame-3, got %s", frame)
	}
	if drops := mailbox.Drops(); drops != 2 {
		t.Errorf("Expected 2 drops, got %d", drops)
	}
}

func TestMailboxGrabBlocksUntilOffer(t *testing.T) {
	mailbox := framegrab.NewMailbox()
	defer mailbox.Close()

	result := make(chan []byte, 1)
	go func() {
		frame, err := mailbox.Grab(context.Background())
		if err != nil {
			t.Errorf("Grab failed: %v", err)
		}
		result <- frame
	}()

	select {
	case <-result:
		t.Fatal("Grab returned before any frame was offered")
	case <-time.After(20 * time.Millisecond):
	}

	mailbox.Offer([]byte("late-frame"))

	select {
	case frame := <-result:
		if string(frame) != "late-frame" {
			t.Errorf("Expected late-frame, got %s", frame)
		}
	case <-time.After(time.Second):
		t.Fatal("Grab did not wake after Offer")
	}
}

func TestMailboxGrabHonorsContextCancel(t *testing.T) {
	mailbox := framegrab.NewMailbox()
	defer mailbox.Close()

	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan error, 1)
	go func() {
		_, err := mailbox.Grab(ctx)
		result <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Grab did not wake after context cancellation")
	}
}

func TestMailboxCloseWakesGrab(t *testing.T) {
	mailbox := framegrab.NewMailbox()

	result := make(chan error, 1)
	go func() {
		_, err := mailbox.Grab(context.Background())
		result <- err
	}()

	time.Sleep(10 * time.Millisecond)
	mailbox.Close()

	select {
	case err := <-result:
		if !errors.Is(err, framegrab.ErrClosed) {
			t.Errorf("Expected ErrClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Grab did not wake after Close")
	}

	if dropped := mailbox.Offer([]byte("after-close")); dropped {
		t.Error("Offer after Close reported a drop")
	}
}

func writeFrameDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestDirSourceLexicalOrder(t *testing.T) {
	dir := writeFrameDir(t, "003.jpg", "001.png", "002.jpeg", "notes.txt")

	source, err := framegrab.NewDirSource(dir)
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	defer source.Close()

	if source.Len() != 3 {
		t.Fatalf("Expected 3 frames, got %d", source.Len())
	}

	expected := []string{"001.png", "002.jpeg", "003.jpg"}
	for _, want := range expected {
		frame, err := source.Grab(context.Background())
		if err != nil {
			t.Fatalf("Grab failed: %v", err)
		}
		if string(frame) != want {
			t.Errorf("Expected %s, got %s", want, frame)
		}
	}

	_, err = source.Grab(context.Background())
	if !errors.Is(err, framegrab.ErrExhausted) {
		t.Errorf("Expected ErrExhausted after last frame, got %v", err)
	}
}

func TestDirSourceRejectsEmptyDir(t *testing.T) {
	dir := writeFrameDir(t, "readme.md")

	if _, err := framegrab.NewDirSource(dir); err == nil {
		t.Error("Expected error for directory without image frames")
	}
}

func TestDirSourceClosedGrab(t *testing.T) {
	dir := writeFrameDir(t, "001.jpg")

	source, err := framegrab.NewDirSource(dir)
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	source.Close()

	if _, err := source.Grab(context.Background()); !errors.Is(err, framegrab.ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}
