package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	// MaxCookieSize caps serialized cookies at the common browser limit.
	MaxCookieSize = 4096
	// minSecretLength is what AES-256 keys require.
	minSecretLength = 32
	// flashPrefix namespaces flash cookies away from application ones.
	flashPrefix = "__flash_"
	// defaultConsentCookie names the consent record cookie.
	defaultConsentCookie = "__cookie_consent"
	// defaultConsentVersion invalidates stored consent when bumped.
	defaultConsentVersion = "1.0"
	// defaultConsentMaxAge keeps consent for one year.
	defaultConsentMaxAge = 365 * 24 * 60 * 60
)

// ConsentStatus is the user's cookie consent decision.
type ConsentStatus int

const (
	// ConsentUnknown means no decision was recorded yet.
	ConsentUnknown ConsentStatus = iota
	// ConsentEssentialOnly permits only cookies marked essential.
	ConsentEssentialOnly
	// ConsentAll permits everything, analytics and marketing included.
	ConsentAll
)

// ConsentData is the consent record persisted in the consent cookie.
type ConsentData struct {
	Status    ConsentStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
}

// Manager reads and writes cookies with HMAC signing, AES-GCM encryption,
// flash messages, and GDPR consent enforcement. Multiple secrets enable
// key rotation: the first signs and encrypts, all of them verify and
// decrypt.
type Manager struct {
	secrets  []string
	defaults Options
	maxSize  int

	consentCookie  string
	consentVersion string
	consentMaxAge  int
}

// ManagerOption adjusts manager-wide settings, as opposed to Option which
// shapes individual cookies.
//
//	manager, err := cookie.NewWithOptions(secrets, cookieOpts,
//		cookie.WithMaxSize(8192),
//		cookie.WithConsentCookie("gdpr_consent"))
type ManagerOption func(*Manager)

// WithMaxSize overrides the serialized cookie size limit.
func WithMaxSize(size int) ManagerOption {
	return func(m *Manager) {
		if size > 0 {
			m.maxSize = size
		}
	}
}

// WithConsentCookie renames the consent cookie.
func WithConsentCookie(name string) ManagerOption {
	return func(m *Manager) {
		if name != "" {
			m.consentCookie = name
		}
	}
}

// WithConsentVersion sets the consent schema version; stored consent with
// a different version reads as unknown, forcing a fresh prompt.
func WithConsentVersion(version string) ManagerOption {
	return func(m *Manager) {
		if version != "" {
			m.consentVersion = version
		}
	}
}

// WithConsentMaxAge sets how long recorded consent lasts, in seconds.
func WithConsentMaxAge(seconds int) ManagerOption {
	return func(m *Manager) {
		if seconds > 0 {
			m.consentMaxAge = seconds
		}
	}
}

// New builds a Manager from signing secrets. Every secret must be at
// least 32 bytes; blank entries are dropped. Cookie defaults are Path "/",
// HttpOnly, SameSite Lax, adjustable through opts.
func New(secrets []string, opts ...Option) (*Manager, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	secrets = slices.DeleteFunc(secrets, func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secret), minSecretLength)
		}
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	defaults = applyOptions(defaults, opts)

	return &Manager{
		secrets:        secrets,
		defaults:       defaults,
		maxSize:        MaxCookieSize,
		consentCookie:  defaultConsentCookie,
		consentVersion: defaultConsentVersion,
		consentMaxAge:  defaultConsentMaxAge,
	}, nil
}

// NewWithOptions is New plus manager-level options.
func NewWithOptions(secrets []string, cookieOpts []Option, managerOpts ...ManagerOption) (*Manager, error) {
	m, err := New(secrets, cookieOpts...)
	if err != nil {
		return nil, err
	}

	for _, opt := range managerOpts {
		opt(m)
	}

	return m, nil
}

// Set writes a plain cookie. Non-essential cookies require recorded
// consent and fail with ErrConsentRequired without it.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	if !options.Essential && !m.hasConsent(r) {
		return ErrConsentRequired
	}

	return m.writeCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get returns a cookie's raw value, ErrCookieNotFound when absent.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete expires a cookie in the browser.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}

// SetSigned writes a tamper-evident cookie. The value is readable by the
// client but any modification fails verification on the way back in.
func (m *Manager) SetSigned(w http.ResponseWriter, r *http.Request, name, value string, opts ...Option) error {
	return m.Set(w, r, name, m.sign(value), opts...)
}

// GetSigned reads a signed cookie, verifying the signature against every
// configured secret.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(signed)
}

// SetEncrypted writes a cookie the client cannot read or alter.
func (m *Manager) SetEncrypted(w http.ResponseWriter, r *http.Request, name, value string, opts ...Option) error {
	encrypted, err := m.encrypt(value)
	if err != nil {
		return err
	}
	return m.Set(w, r, name, encrypted, opts...)
}

// GetEncrypted reads and decrypts an encrypted cookie, trying every
// configured secret.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	encrypted, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.decrypt(encrypted)
}

// SetFlash stores a one-shot value, JSON encoded and encrypted. Flash
// cookies are essential so notices survive missing consent.
func (m *Manager) SetFlash(w http.ResponseWriter, r *http.Request, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return m.SetEncrypted(w, r, flashPrefix+key, string(data), WithEssential())
}

// GetFlash reads a flash value into dest and deletes the cookie in the
// same response, so the next read misses.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	cookieName := flashPrefix + key

	data, err := m.GetEncrypted(r, cookieName)
	if err != nil {
		return err
	}

	m.Delete(w, cookieName)

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshal flash: %w", err)
	}

	return nil
}

// GetConsent reads the stored consent record. A missing cookie, an
// unreadable record, or a version mismatch all come back as
// ConsentUnknown rather than an error the caller has to branch on.
func (m *Manager) GetConsent(r *http.Request) (ConsentData, error) {
	var consent ConsentData

	value, err := m.GetEncrypted(r, m.consentCookie)
	if err != nil {
		if err == ErrCookieNotFound {
			return ConsentData{Status: ConsentUnknown}, nil
		}
		return consent, err
	}

	if err := json.Unmarshal([]byte(value), &consent); err != nil {
		return ConsentData{Status: ConsentUnknown}, err
	}

	if consent.Version != m.consentVersion {
		return ConsentData{Status: ConsentUnknown}, nil
	}

	return consent, nil
}

// StoreConsent records the user's decision. The consent cookie itself is
// always written; gating it on consent would make refusal unrecordable.
func (m *Manager) StoreConsent(w http.ResponseWriter, r *http.Request, status ConsentStatus) error {
	consent := ConsentData{
		Status:    status,
		Timestamp: time.Now(),
		Version:   m.consentVersion,
	}

	data, err := json.Marshal(consent)
	if err != nil {
		return err
	}

	return m.setConsentCookie(w, m.consentCookie, string(data))
}

// ClearConsent forgets the stored decision.
func (m *Manager) ClearConsent(w http.ResponseWriter) {
	m.Delete(w, m.consentCookie)
}

// HasConsent reports whether non-essential cookies may be written.
func (m *Manager) HasConsent(r *http.Request) bool {
	return m.hasConsent(r)
}

func (m *Manager) hasConsent(r *http.Request) bool {
	consent, err := m.GetConsent(r)
	if err != nil {
		return false
	}
	return consent.Status == ConsentAll
}

// setConsentCookie writes the consent record without the consent gate,
// encrypted, HttpOnly, and SameSite Strict regardless of defaults.
func (m *Manager) setConsentCookie(w http.ResponseWriter, name, value string) error {
	encrypted, err := m.encrypt(value)
	if err != nil {
		return err
	}

	return m.writeCookie(w, &http.Cookie{
		Name:     name,
		Value:    encrypted,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   m.consentMaxAge,
		Secure:   m.defaults.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// writeCookie enforces the size limit on the serialized header before
// sending the cookie.
func (m *Manager) writeCookie(w http.ResponseWriter, cookie *http.Cookie) error {
	header := cookie.String()
	if len(header) > m.maxSize {
		return ErrCookieTooLarge{
			Name: cookie.Name,
			Size: len(header),
			Max:  m.maxSize,
		}
	}

	http.SetCookie(w, cookie)
	return nil
}

// sign produces "base64(value)|base64(hmac)" using the primary secret.
func (m *Manager) sign(value string) string {
	mac := hmac.New(sha256.New, []byte(m.secrets[0]))
	mac.Write([]byte(value))
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(value)) + "|" + signature
}

// verify recovers the value from sign's format, accepting a signature
// from any configured secret so rotated-out keys keep validating.
func (m *Manager) verify(signed string) (string, error) {
	parts := strings.SplitN(signed, "|", 2)
	if len(parts) != 2 {
		return "", ErrInvalidFormat
	}

	encodedValue, signature := parts[0], parts[1]

	value, err := base64.URLEncoding.DecodeString(encodedValue)
	if err != nil {
		return "", ErrInvalidFormat
	}

	validIndex := slices.IndexFunc(m.secrets, func(secret string) bool {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(value)
		expectedSig := base64.URLEncoding.EncodeToString(mac.Sum(nil))
		return subtle.ConstantTimeCompare([]byte(signature), []byte(expectedSig)) == 1
	})

	if validIndex >= 0 {
		return string(value), nil
	}

	return "", ErrInvalidSignature
}

// gcmFor builds the AES-256-GCM cipher for one secret, using its first 32
// bytes as the key.
func gcmFor(secret string) (cipher.AEAD, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: secret must be at least 32 bytes for AES-256", ErrSecretTooShort)
	}

	block, err := aes.NewCipher([]byte(secret[:minSecretLength]))
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

// encrypt seals the value with the primary secret, nonce prepended.
func (m *Manager) encrypt(value string) (string, error) {
	gcm, err := gcmFor(m.secrets[0])
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(value), nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// decrypt opens the value with whichever configured secret fits. Wrong
// keys, truncated payloads, and tampering all collapse into
// ErrDecryptionFailed; only a malformed base64 wrapper reports
// ErrInvalidFormat.
func (m *Manager) decrypt(encrypted string) (string, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range m.secrets {
		gcm, err := gcmFor(secret)
		if err != nil {
			continue
		}

		if len(ciphertext) < gcm.NonceSize() {
			continue
		}

		nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
		plaintext, err := gcm.Open(nil, nonce, sealed, nil)
		if err == nil {
			return string(plaintext), nil
		}
	}

	return "", ErrDecryptionFailed
}
