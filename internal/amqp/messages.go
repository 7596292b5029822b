package amqp

import (
	"encoding/json"
	"time"
)

// JournalSyncMessage asks the export worker to push one journal entry.
// It carries only the entry id; the worker reads the full row from the
// journal database.
type JournalSyncMessage struct {
	EntryID   int64     `json:"entry_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewJournalSyncMessage(entryID int64) *JournalSyncMessage {
	return &JournalSyncMessage{
		EntryID:   entryID,
		Timestamp: time.Now(),
	}
}

func (m *JournalSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func JournalSyncMessageFromJSON(data []byte) (*JournalSyncMessage, error) {
	var msg JournalSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
