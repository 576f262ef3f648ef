package models

// CreditAccount tracks one user's remaining daily generations. LastReset is
// the calendar date (YYYY-MM-DD) the balance was last refilled; the ledger
// compares it by string equality against today's date.
type CreditAccount struct {
	UserID    string `json:"userId"`
	Credits   int    `json:"credits"`
	LastReset string `json:"lastReset"`
}

// HistoryEntry is an immutable record of one past generation. Params is a
// frozen copy of the request that produced the content, and Timestamp is
// milliseconds since the Unix epoch.
type HistoryEntry struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Content   string            `json:"content"`
	Params    GenerationRequest `json:"params"`
	Timestamp int64             `json:"timestamp"`
}

// Preset is a named, reusable generation request template.
type Preset struct {
	ID     string            `json:"id"`
	UserID string            `json:"userId"`
	Name   string            `json:"name"`
	Params GenerationRequest `json:"params"`
}
