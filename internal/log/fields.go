package log

// Field names shared by the packages that log through slog, so the
// journal pipeline can be traced by entry_id across client, queue and
// export worker.
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldEntryID     = "entry_id"
	FieldResource    = "resource"
	FieldAction      = "action"
	FieldReference   = "reference"
	FieldAmountCents = "amount_cents"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldExportRef   = "export_ref"
	FieldQueue       = "queue"
	FieldExchange    = "exchange"
)

// Component names for the two binaries.
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
)
