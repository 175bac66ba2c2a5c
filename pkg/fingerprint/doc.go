// Package fingerprint derives stable device identifiers from HTTP
// requests, for session-hijack detection and deterministic rollout
// bucketing.
//
// A fingerprint is "v1:" plus 32 hex characters, hashed from the
// User-Agent, the Accept family, and the set of browser headers the
// client sent. The client IP is opt-in via WithIP because it rotates on
// mobile networks and VPNs.
//
//	// At login:
//	fp := fingerprint.Cookie(r)
//	// store fp with the session
//
//	// On later requests:
//	if err := fingerprint.ValidateCookie(r, storedFP); err != nil {
//		// fingerprint.ErrMismatch: client characteristics changed
//	}
//
// Treat a mismatch as a signal, not proof: browser updates and privacy
// extensions shift these characteristics for legitimate users, so
// prefer step-up verification over immediate session termination.
//
// # Rollout buckets
//
// Bucket hashes the client IP and User-Agent into one of 100 stable
// buckets for percentage rollouts; the same client always lands in the
// same bucket:
//
//	if fingerprint.Bucket(r) < rolloutPercentage {
//		// client is inside the rollout
//	}
package fingerprint
