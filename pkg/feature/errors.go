package feature

import "errors"

var (
	// ErrFlagNotFound is returned when no flag with the requested name exists.
	ErrFlagNotFound = errors.New("feature flag not found")
	// ErrFlagDisabled is returned when the flag exists but is switched off.
	ErrFlagDisabled = errors.New("feature flag is disabled")
	// ErrNotInRollout is returned when the client's bucket falls outside the
	// flag's rollout percentage.
	ErrNotInRollout = errors.New("client is not in the feature rollout")
	// ErrAuthRequired is returned when the flag requires an authenticated
	// caller and none is present.
	ErrAuthRequired = errors.New("feature flag requires authentication")
)
