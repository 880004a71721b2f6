package models

import (
	"encoding/json"
	"time"
)

// Snapshot is the raw body of one API response, kept for audit and replay
type Snapshot struct {
	ID        int             `db:"id"`
	Endpoint  string          `db:"endpoint"`
	Query     string          `db:"query"`
	Payload   json.RawMessage `db:"payload"`
	RowCount  int             `db:"row_count"`
	FetchedAt time.Time       `db:"fetched_at"`
}
