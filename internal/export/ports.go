package export

import (
	"context"

	"finzen/internal/core"
	"finzen/internal/journal"
)

// Record is the flattened shape of a journal entry as it lands in a
// spreadsheet row.
type Record struct {
	Date           core.Date
	Resource       string
	Action         string
	Reference      string
	Amount         core.Money
	IsQuotaPayment bool
	Notes          string
}

// RecordFromEntry flattens a journal entry for export.
func RecordFromEntry(e journal.Entry) Record {
	return Record{
		Date:           e.OccurredOn,
		Resource:       e.Resource,
		Action:         e.Action,
		Reference:      e.Reference,
		Amount:         core.Money{Cents: e.AmountCents},
		IsQuotaPayment: e.IsQuotaPayment,
		Notes:          e.Notes,
	}
}

// Ports for outbound adapters.
type (
	RecordAppender interface {
		Append(ctx context.Context, r Record) (rowRef string, err error)
	}
)
