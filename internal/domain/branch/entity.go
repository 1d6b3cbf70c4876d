package branch

import "time"

// Branch is a physical site (building, compound) that owns checkpoints and
// has guards assigned to it.
type Branch struct {
	ID        string
	Name      string
	Address   *string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
