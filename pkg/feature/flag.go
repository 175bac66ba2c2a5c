package feature

// Flag describes a single feature toggle.
type Flag struct {
	// Name identifies the flag in lookups and URLs.
	Name string
	// Description explains what the flag gates, for listings and admin UIs.
	Description string
	// Enabled is the master switch; a disabled flag is off for everyone
	// regardless of rollout.
	Enabled bool
	// RequiresAuth restricts the flag to authenticated callers.
	RequiresAuth bool
	// Rollout is the percentage of clients (0 to 100) the flag is active for.
	Rollout int
}

// InRollout reports whether a client assigned to the given bucket (0 to 99)
// falls inside the flag's rollout percentage. A rollout of 100 covers every
// bucket, a rollout of 0 covers none.
func (f Flag) InRollout(bucket int) bool {
	return bucket < f.Rollout
}
