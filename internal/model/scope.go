package model

// Scope identifies the caller on whose behalf an operation runs.
type Scope struct {
	UserID string
}

// Valid reports whether the scope names a user.
func (s Scope) Valid() bool {
	return s.UserID != ""
}
