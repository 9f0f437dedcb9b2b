package generator

import "context"

// PromptEntry is what gets persisted, best-effort, after a successful
// generation. The storage side lives outside this subsystem.
type PromptEntry struct {
	UserID          string `json:"userId"`
	PromptType      string `json:"promptType"`
	PromptText      string `json:"promptText"`
	ResponseSummary string `json:"responseSummary"`
}

// PromptRecorder is the write-behind persistence boundary. Record failures
// must never fail the generation that triggered them.
type PromptRecorder interface {
	Record(ctx context.Context, entry PromptEntry) error
}

// NoopRecorder discards entries; used when no audit endpoint is configured.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, PromptEntry) error { return nil }
