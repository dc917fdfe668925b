package domain

import "time"

// DevLogRevisionCap bounds how many prior revisions a dev log keeps.
// Oldest entries are dropped first on overflow.
const DevLogRevisionCap = 10

// Revision preserves the prior state of a dev log's content field.
type Revision struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// DevLog is an editorial entry with a capped revision history.
type DevLog struct {
	ID        string
	Title     string
	Content   string
	Category  string
	Archived  bool
	Revisions []Revision
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppendCapped appends rev keeping at most cap entries, evicting oldest
// first. The stored order is append order. The SQL mutation performs the
// same push-and-trim in a single statement; this helper is the reference
// rule shared with in-memory fakes.
func AppendCapped(revisions []Revision, rev Revision, cap int) []Revision {
	out := append(append([]Revision{}, revisions...), rev)
	if cap > 0 && len(out) > cap {
		out = out[len(out)-cap:]
	}
	return out
}
