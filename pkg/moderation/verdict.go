package moderation

// Verdict is the outcome of screening one user message.
type Verdict struct {
	Flagged bool
	// Category is the classifier's stated reason when Flagged is true,
	// for example "acoso" or "contenido sexual".
	Category string
	// FailedOpen is true when the classifier errored or timed out and the
	// message was allowed through unscreened.
	FailedOpen bool
}
