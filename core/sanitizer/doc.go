// Package sanitizer cleans untrusted input: string normalization, format
// canonicalization for emails and phones and URLs, injection defenses,
// and tag-driven struct sanitization.
//
// Everything is a pure func(string) string (plus the struct walker), so
// sanitizers compose by nesting and register by name for tag use.
//
// # String cleanup
//
//	sanitizer.Trim("  hi  ")                    // "hi"
//	sanitizer.TrimToLower("  ADMIN ")           // "admin"
//	sanitizer.ToKebabCase("Hello, World!")      // "hello-world"
//	sanitizer.ToSnakeCase("First Name")         // "first_name"
//	sanitizer.RemoveExtraWhitespace("a   b\tc") // "a b c"
//	sanitizer.MaxLength("héllo wörld", 5)       // "héllo" (runes, not bytes)
//	sanitizer.KeepDigits("+1 (555) 123-4567")   // "15551234567"
//
// # Format normalization
//
// NormalizeEmail, NormalizePhone, NormalizeURL, ExtractDomain,
// NormalizePostalCode, and SanitizeFilename canonicalize the usual form
// fields so equality checks and storage behave:
//
//	sanitizer.NormalizeEmail(" John.Doe@EXAMPLE.com ") // "john.doe@example.com"
//	sanitizer.ExtractDomain("https://blog.example.com/post") // "blog.example.com"
//
// # Injection defenses
//
// The security helpers neutralize input headed somewhere dangerous:
// EscapeHTML and PreventXSS for markup, EscapeSQLString and
// SanitizeSQLIdentifier for queries built by hand, PreventPathTraversal
// and SanitizeSecureFilename for file paths, PreventHeaderInjection for
// response headers.
//
//	sanitizer.StripHTML("<b>bold</b> &amp; plain") // "bold & plain"
//	sanitizer.PreventPathTraversal("../../etc/passwd") // "etc/passwd"
//
// These are input hygiene, not a substitute for parameterized queries or
// a templating engine's escaping.
//
// # Struct tags
//
// SanitizeStruct walks a struct and rewrites string fields per their
// `sanitize` tag. Names run left to right and come from the same
// registry as the functions above; max:N truncates to N runes.
//
//	type SignupForm struct {
//		Email    string   `sanitize:"trim,lower,email"`
//		Username string   `sanitize:"username,max:30"`
//		Bio      string   `sanitize:"text,strip_html,max:500"`
//		Internal string   `sanitize:"-"`
//		Tags     []string `sanitize:"trim,kebab"`
//	}
//
//	form := SignupForm{Email: "  USER@Example.COM "}
//	if err := sanitizer.SanitizeStruct(&form); err != nil {
//		return err
//	}
//	// form.Email == "user@example.com"
//
// Nested structs and non-nil pointers are descended into automatically;
// unexported fields are left alone.
//
// Custom sanitizers plug into the registry:
//
//	sanitizer.RegisterSanitizer("redact_ssn", func(s string) string {
//		return sanitizer.NormalizeSSN(s)
//	})
//
// Composite names cover common fields: "username", "slug", "name",
// "text", "safe_text", and "safe_html" chain the primitives in the order
// a form handler usually wants.
package sanitizer
