package models

import "time"

// SchemaMarker records completion of a one-shot destructive migration step.
// The marker row is written only after the step fully succeeds, so a
// crashed attempt retries from a clean slate on the next run.
type SchemaMarker struct {
	Name      string    `gorm:"primaryKey" json:"name"`
	AppliedAt time.Time `json:"applied_at"`
}
