package logging

// Standard structured logging keys.
const (
	// FieldComponent names the subsystem emitting the record.
	FieldComponent = "component"
	// FieldFile is the data file being processed.
	FieldFile = "file"
	// FieldLine is a 1-based line number inside FieldFile.
	FieldLine = "line"
	// FieldLineCount is the number of decoded lines in a document.
	FieldLineCount = "line_count"
	// FieldEntryID identifies a measurement entry.
	FieldEntryID = "entry_id"
	// FieldElapsed is the wall time an operation took.
	FieldElapsed = "elapsed"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)
