package models

import "time"

// ExplainResult is the assembled output of one explanation run. Constructed
// fresh per call; nothing here is shared or persisted unless the caller
// records it in the history store.
type ExplainResult struct {
	Language      string            `json:"language"`
	Explanation   string            `json:"explanation"`
	CommentedCode string            `json:"commented_code,omitempty"`
	ModelUsed     string            `json:"model_used"`
	Degraded      bool              `json:"degraded"` // heuristics filled in for the remote service
	Blocks        map[string]string `json:"blocks,omitempty"`
}

// HistoryEntry is one recorded explanation run.
type HistoryEntry struct {
	ID        string    `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"`
	Language  string    `json:"language" db:"language"`
	ModelUsed string    `json:"model_used" db:"model_used"`
	Degraded  bool      `json:"degraded" db:"degraded"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
