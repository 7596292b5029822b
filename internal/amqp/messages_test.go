package amqp

import (
	"testing"
	"time"
)

func TestJournalSyncMessageRoundTrip(t *testing.T) {
	msg := NewJournalSyncMessage(42)
	if msg.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := JournalSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("JournalSyncMessageFromJSON() error = %v", err)
	}
	if decoded.EntryID != 42 {
		t.Errorf("EntryID = %d, want 42", decoded.EntryID)
	}
	if decoded.Timestamp.Sub(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp drifted: %v vs %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestJournalSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := JournalSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid payload")
	}
}
