package models

// GroupEntry is the registry-level record of an active group.
type GroupEntry struct {
	// Creator is the user ID of the group's creator.
	Creator string `json:"creator"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// Registry is the single identity/registry record.
// It is always read and rewritten as a whole.
type Registry struct {
	// Users maps credential ids to identities.
	Users map[string]Identity `json:"users"`

	// Groups maps active group codes to their registry entry.
	Groups map[string]GroupEntry `json:"groups"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Users:  make(map[string]Identity),
		Groups: make(map[string]GroupEntry),
	}
}

// Normalize replaces nil maps with empty ones.
func (r *Registry) Normalize() {
	if r.Users == nil {
		r.Users = make(map[string]Identity)
	}
	if r.Groups == nil {
		r.Groups = make(map[string]GroupEntry)
	}
}
