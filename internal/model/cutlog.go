package model

import "time"

// CutLogEntry is the permanent record of one cut that was actually made.
// Entries are created once per successful run and never modified.
type CutLogEntry struct {
	ID         string    `json:"id" yaml:"id"`
	BatchID    string    `json:"batch_id" yaml:"batch_id"` // Groups entries from one calculation run
	Name       string    `json:"name" yaml:"name"`
	Length     float64   `json:"length" yaml:"length"`
	ReelID     int       `json:"reel_id" yaml:"reel_id"`
	StartIndex float64   `json:"start_index" yaml:"start_index"`
	EndIndex   float64   `json:"end_index" yaml:"end_index"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// CutLogSummary aggregates a cut log.
type CutLogSummary struct {
	TotalCuts   int     `json:"total_cuts"`
	TotalLength float64 `json:"total_length"`
}
