package domain

import "time"

// Metadata carries the bookkeeping columns shared by every persisted entity.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
