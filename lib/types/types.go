package types

import "time"

// Topic is a candidate subject returned by the search step, before filtering.
type Topic struct {
	Title string
	Link  string
	Date  string
	Query string
}

// HistoryEntry is the persisted record of a previously posted topic.
// Entries are appended after a successful publish and never mutated.
type HistoryEntry struct {
	Topic      string    `json:"topic"`
	Normalized string    `json:"normalized"`
	PostedAt   time.Time `json:"posted_at"`
	Content    string    `json:"content,omitempty"`
	PostURN    string    `json:"post_urn,omitempty"`
}
