package domain

// PersistedSession is the subset of session state written to durable
// storage. Transient flags (loading, error, initializing) never persist.
type PersistedSession struct {
	User            *User  `json:"user,omitempty"`
	Token           string `json:"token,omitempty"`
	IsAuthenticated bool   `json:"is_authenticated"`
}
