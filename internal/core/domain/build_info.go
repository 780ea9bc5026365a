package domain

import "time"

// BuildInfo records the last successful run of a stage or a single compile
// unit. A matching input hash on the next run means the work can be skipped.
type BuildInfo struct {
	Key       string    `json:"key,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
