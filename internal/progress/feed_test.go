package progress

import (
	"testing"
	"time"
)

func TestFeedDeliversToSubscriber(t *testing.T) {
	feed := NewFeed()
	ch, cancel := feed.Subscribe("user-1")
	defer cancel()

	feed.Publish("user-1", Entry{DocumentTypeID: "passport", Status: StatusCompleted})

	select {
	case entry := <-ch:
		if entry.DocumentTypeID != "passport" {
			t.Fatalf("expected passport entry, got %+v", entry)
		}
	case <-time.After(time.Second):
		t.Fatal("expected entry on subscription channel")
	}
}

func TestFeedScopesByUser(t *testing.T) {
	feed := NewFeed()
	ch, cancel := feed.Subscribe("user-1")
	defer cancel()

	feed.Publish("user-2", Entry{DocumentTypeID: "passport"})

	select {
	case entry := <-ch:
		t.Fatalf("unexpected entry for other user: %+v", entry)
	default:
	}
}

func TestFeedCancelClosesChannel(t *testing.T) {
	feed := NewFeed()
	ch, cancel := feed.Subscribe("user-1")
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after cancel")
	}

	// Publishing after cancel must not panic.
	feed.Publish("user-1", Entry{DocumentTypeID: "passport"})

	// Cancel is idempotent.
	cancel()
}

func TestFeedDropsWhenSubscriberFull(t *testing.T) {
	feed := NewFeed()
	ch, cancel := feed.Subscribe("user-1")
	defer cancel()

	// Fill the buffer and then some; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			feed.Publish("user-1", Entry{DocumentTypeID: "passport"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
	if len(ch) == 0 {
		t.Fatal("expected at least one buffered entry")
	}
}
