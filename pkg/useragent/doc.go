// Package useragent parses User-Agent strings into device type,
// operating system, and browser information, with bot detection for the
// common crawlers.
//
//	ua, err := useragent.Parse(r.Header.Get("User-Agent"))
//	if err != nil {
//		// ErrEmptyUserAgent, ErrMalformedUserAgent, or ErrUnknownDevice
//		return
//	}
//
//	ua.DeviceType()          // "mobile"
//	ua.OS()                  // "ios"
//	ua.BrowserName()         // "safari"
//	ua.BrowserVer()          // "17.2"
//	ua.DeviceModel()         // "iphone"
//	ua.GetShortIdentifier()  // "Safari on iOS (iPhone)"
//
// DeviceType is one of the DeviceType* constants (mobile, tablet,
// desktop, bot, tv, console, unknown); the Is* predicates cover the
// usual branching:
//
//	if ua.IsBot() {
//		// skip analytics
//	}
//	if ua.IsMobile() || ua.IsTablet() {
//		// compact layout
//	}
//
// Parsing is keyword matching over a lowercased copy, a few
// microseconds per call. Parse errors still leave a usable zero value,
// and New constructs a UserAgent directly when a fallback identity is
// needed:
//
//	ua, err := useragent.Parse(raw)
//	if err != nil {
//		ua = useragent.New(raw, "unknown", "", "unknown", "unknown", "")
//	}
package useragent
