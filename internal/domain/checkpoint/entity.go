package checkpoint

import "time"

// Checkpoint is a physical location identified by an NFC tag, belonging to a
// branch.
type Checkpoint struct {
	ID        string
	BranchID  string
	Name      string
	TagUID    string // NFC tag UID, unique
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
