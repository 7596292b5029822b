package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finzen/internal/amqp"
	"finzen/internal/export"
	"finzen/internal/journal"
	"finzen/internal/log"
)

// ExportProcessor moves journal entries into the export sink and marks
// them synced. It is driven by AMQP messages and by a periodic drain
// that catches entries whose messages were lost.
type ExportProcessor struct {
	journal  *journal.Store
	appender export.RecordAppender
}

func NewExportProcessor(store *journal.Store, appender export.RecordAppender) *ExportProcessor {
	return &ExportProcessor{
		journal:  store,
		appender: appender,
	}
}

// HandleSyncMessage exports the entry named by one sync message.
// Unknown entries are dropped rather than requeued; an already synced
// entry is a no-op, so redelivered messages are harmless.
func (p *ExportProcessor) HandleSyncMessage(ctx context.Context, msg *amqp.JournalSyncMessage) error {
	entry, err := p.journal.GetByID(ctx, msg.EntryID)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			slog.WarnContext(ctx, "sync message for unknown journal entry",
				log.FieldEntryID, msg.EntryID)
			return nil
		}
		return fmt.Errorf("get journal entry %d: %w", msg.EntryID, err)
	}

	return p.exportEntry(ctx, entry)
}

// DrainPending exports up to batchSize unsynced entries, oldest first,
// and returns how many were exported. It stops at the first failure so
// the exporter's ordering is preserved.
func (p *ExportProcessor) DrainPending(ctx context.Context, batchSize int) (int, error) {
	entries, err := p.journal.ListUnsynced(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("list unsynced entries: %w", err)
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := p.exportEntry(ctx, entry); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}

func (p *ExportProcessor) exportEntry(ctx context.Context, entry journal.Entry) error {
	if entry.SyncedAt != nil {
		slog.DebugContext(ctx, "journal entry already synced", log.FieldEntryID, entry.ID)
		return nil
	}

	ref, err := p.appender.Append(ctx, export.RecordFromEntry(entry))
	if err != nil {
		return fmt.Errorf("append entry %d: %w", entry.ID, err)
	}

	if err := p.journal.MarkSynced(ctx, entry.ID); err != nil {
		return fmt.Errorf("mark entry %d synced: %w", entry.ID, err)
	}

	slog.InfoContext(ctx, "exported journal entry",
		log.FieldEntryID, entry.ID,
		log.FieldResource, entry.Resource,
		log.FieldAction, entry.Action,
		log.FieldExportRef, ref)

	return nil
}
