// Package cookie manages HTTP cookies with signing, encryption, flash
// messages, and GDPR consent enforcement.
//
// A Manager wraps the raw http.SetCookie plumbing with security defaults
// (Path "/", HttpOnly, SameSite Lax), a 4KB serialized-size check, and a
// consent gate: cookies not marked essential are refused until the user
// has granted consent.
//
// # Getting started
//
//	manager, err := cookie.New([]string{"your-32-char-secret-key-here!!!!"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Plain cookie; the request is needed for the consent check.
//	err = manager.Set(w, r, "theme", "dark", cookie.WithMaxAge(3600))
//
//	value, err := manager.Get(r, "theme")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// absent
//	}
//
//	manager.Delete(w, "theme")
//
// # Signed and encrypted values
//
// SetSigned appends an HMAC-SHA256 signature so the client can read the
// value but not change it. SetEncrypted seals the value with AES-256-GCM
// so the client can do neither.
//
//	err := manager.SetSigned(w, r, "user_id", "usr_42")
//	id, err := manager.GetSigned(r, "user_id")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// tampered
//	}
//
//	err = manager.SetEncrypted(w, r, "refresh_token", token,
//		cookie.WithSecure(true),
//		cookie.WithSameSite(http.SameSiteStrictMode))
//	token, err = manager.GetEncrypted(r, "refresh_token")
//
// # Key rotation
//
// Pass multiple secrets, newest first. The first secret signs and
// encrypts; every secret verifies and decrypts. Rotate by prepending the
// new key and removing the oldest once its cookies have expired.
//
//	manager, _ := cookie.New([]string{newSecret, previousSecret})
//
// # Flash messages
//
// A flash is a one-shot value: reading it also expires the cookie, so it
// surfaces exactly once. Typical for "saved successfully" notices across
// a redirect.
//
//	_ = manager.SetFlash(w, r, "notice", map[string]string{"msg": "saved"})
//
//	// Next request:
//	var notice map[string]string
//	if err := manager.GetFlash(w, r, "notice", &notice); err == nil {
//		render(notice["msg"])
//	}
//
// # Consent
//
// Consent is two-tier: essential cookies (session, CSRF, the consent
// record itself) always work, everything else needs ConsentAll. The
// decision is stored in an encrypted cookie with a schema version, so
// bumping WithConsentVersion re-prompts every visitor.
//
//	consent, _ := manager.GetConsent(r)
//	if consent.Status == cookie.ConsentUnknown {
//		// show the banner
//	}
//
//	_ = manager.StoreConsent(w, r, cookie.ConsentAll)
//
//	// Essential: always allowed.
//	_ = manager.Set(w, r, "session", sid, cookie.WithEssential())
//
//	// Non-essential: ErrConsentRequired until consent is granted.
//	err := manager.Set(w, r, "analytics_id", aid)
//
// # Configuration
//
// Config maps the manager's settings onto COOKIE_* environment variables
// with secrets comma-separated for rotation:
//
//	var cfg cookie.Config // populate with core/config.Load
//	manager, err := cookie.NewFromConfig(cfg)
//
// # Size limit
//
// Writes whose serialized Set-Cookie header exceeds the limit (4096
// bytes unless raised with WithMaxSize) fail with ErrCookieTooLarge,
// which carries the offending name and sizes:
//
//	var tooLarge cookie.ErrCookieTooLarge
//	if errors.As(err, &tooLarge) {
//		log.Printf("cookie %s is %d bytes, limit %d", tooLarge.Name, tooLarge.Size, tooLarge.Max)
//	}
package cookie
