// Package feature provides feature flags with deterministic percentage rollouts.
//
// Flags are plain values injected at construction time: name, description, an
// enabled switch, an optional authentication requirement, and a rollout
// percentage. The StaticProvider serves an immutable snapshot of them, which
// keeps flag resolution lock-free and makes the active flag set an explicit
// part of application configuration rather than a process-wide mutable table.
//
// # Basic Usage
//
// Build a provider from configuration:
//
//	provider := feature.NewStaticProvider(
//		feature.Flag{
//			Name:        "new-dashboard",
//			Description: "Redesigned dashboard UI",
//			Enabled:     true,
//			Rollout:     50,
//		},
//		feature.Flag{
//			Name:         "beta-api",
//			Description:  "v2 API endpoints",
//			Enabled:      true,
//			RequiresAuth: true,
//			Rollout:      100,
//		},
//	)
//
// Check a flag for a specific client:
//
//	err := provider.IsEnabled(ctx, "new-dashboard", bucket, authenticated)
//	switch {
//	case err == nil:
//		// flag is active for this client
//	case errors.Is(err, feature.ErrFlagNotFound):
//		// no such flag: 404
//	case errors.Is(err, feature.ErrFlagDisabled):
//		// switched off: 403
//	case errors.Is(err, feature.ErrNotInRollout):
//		// outside the rollout percentage: 403
//	case errors.Is(err, feature.ErrAuthRequired):
//		// needs an authenticated caller: 401
//	}
//
// # Rollout Buckets
//
// The provider does not decide how clients map to buckets; callers pass a
// bucket in 0..99 and the flag is active when bucket < Rollout. Deriving the
// bucket from stable client characteristics (see httpkit/pkg/fingerprint's
// Bucket) makes rollout membership deterministic: the same client always gets
// the same answer for the same flag set.
package feature
