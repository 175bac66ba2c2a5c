package useragent

import "strings"

// knownBots is the fast path for common crawlers and social media bots.
// Tokens are matched against the lowercased string; the version, when present,
// follows the token as "token/1.2".
var knownBots = []struct{ token, name string }{
	{"googlebot", "googlebot"},
	{"adsbot-google", "adsbot-google"},
	{"bingbot", "bingbot"},
	{"yandexbot", "yandexbot"},
	{"duckduckbot", "duckduckbot"},
	{"baiduspider", "baiduspider"},
	{"applebot", "applebot"},
	{"facebookexternalhit", "facebookbot"},
	{"facebookbot", "facebookbot"},
	{"twitterbot", "twitterbot"},
	{"linkedinbot", "linkedinbot"},
	{"telegrambot", "telegrambot"},
	{"whatsapp", "whatsapp"},
	{"slackbot", "slackbot"},
	{"discordbot", "discordbot"},
	{"pinterestbot", "pinterestbot"},
	{"semrushbot", "semrushbot"},
	{"ahrefsbot", "ahrefsbot"},
	{"mj12bot", "mj12bot"},
	{"dotbot", "dotbot"},
	{"petalbot", "petalbot"},
	{"gptbot", "gptbot"},
	{"uptimerobot", "uptimerobot"},
	{"pingdom", "pingdom"},
}

// httpTools are non-browser HTTP clients treated as bot traffic.
var httpTools = []struct{ token, name string }{
	{"curl/", "curl"},
	{"wget/", "wget"},
	{"python-requests", "python-requests"},
	{"python-urllib", "python-urllib"},
	{"go-http-client", "go-http-client"},
	{"okhttp", "okhttp"},
	{"libwww-perl", "libwww-perl"},
	{"httpclient", "httpclient"},
	{"headlesschrome", "headlesschrome"},
	{"phantomjs", "phantomjs"},
	{"lighthouse", "lighthouse"},
	{"postmanruntime", "postman"},
}

// genericBotMarkers catch self-identifying crawlers not in the fast path.
var genericBotMarkers = []string{"bot/", "bot;", "bot)", "crawler", "spider", "scraper"}

// Parse classifies a User-Agent string into device type, model, operating
// system, and browser. It returns ErrEmptyUserAgent for blank input,
// ErrMalformedUserAgent when the string carries control characters or no
// letters at all, and ErrUnknownDevice when nothing could be identified.
func Parse(rawUA string) (UserAgent, error) {
	raw := strings.TrimSpace(rawUA)
	if raw == "" {
		return UserAgent{}, ErrEmptyUserAgent
	}
	hasLetter := false
	for _, r := range raw {
		if r < 0x20 || r == 0x7f {
			return UserAgent{}, ErrMalformedUserAgent
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			hasLetter = true
		}
	}
	if !hasLetter {
		return UserAgent{}, ErrMalformedUserAgent
	}

	lower := strings.ToLower(raw)

	if name, ver, ok := detectBot(lower); ok {
		return UserAgent{
			raw:         raw,
			deviceType:  DeviceTypeBot,
			os:          DeviceTypeUnknown,
			browserName: name,
			browserVer:  ver,
		}, nil
	}

	os := detectOS(lower)
	browser, ver := detectBrowser(lower)
	deviceType, model := detectDevice(lower, os)

	if deviceType == DeviceTypeUnknown && os == DeviceTypeUnknown && browser == DeviceTypeUnknown {
		return UserAgent{}, ErrUnknownDevice
	}

	return UserAgent{
		raw:         raw,
		deviceType:  deviceType,
		deviceModel: model,
		os:          os,
		browserName: browser,
		browserVer:  ver,
	}, nil
}

func detectBot(lower string) (name, version string, ok bool) {
	for _, b := range knownBots {
		if strings.Contains(lower, b.token) {
			return b.name, versionAfter(lower, b.token+"/"), true
		}
	}
	for _, t := range httpTools {
		if strings.Contains(lower, t.token) {
			marker := t.token
			if !strings.HasSuffix(marker, "/") {
				marker += "/"
			}
			return t.name, versionAfter(lower, marker), true
		}
	}
	for _, m := range genericBotMarkers {
		if idx := strings.Index(lower, m); idx >= 0 {
			name := productAround(lower, idx)
			return name, versionAfter(lower, name+"/"), true
		}
	}
	return "", "", false
}

func detectOS(lower string) string {
	switch {
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ipod"):
		return "ios"
	case strings.Contains(lower, "android"):
		return "android"
	case strings.Contains(lower, "windows"):
		return "windows"
	case strings.Contains(lower, "cros"):
		return "chromeos"
	case strings.Contains(lower, "mac os x"), strings.Contains(lower, "macintosh"):
		return "macos"
	case strings.Contains(lower, "linux"), strings.Contains(lower, "x11"):
		return "linux"
	default:
		return DeviceTypeUnknown
	}
}

// detectBrowser identifies the browser and its version. Order matters:
// Chromium-based browsers embed "Chrome/" and everything WebKit-based embeds
// "Safari/", so the more specific tokens are checked first.
func detectBrowser(lower string) (name, version string) {
	switch {
	case strings.Contains(lower, "edg"):
		return "edge", firstVersion(lower, "edg/", "edga/", "edgios/", "edge/")
	case strings.Contains(lower, "opr/"), strings.Contains(lower, "opera"):
		return "opera", firstVersion(lower, "opr/", "opera/", "version/")
	case strings.Contains(lower, "samsungbrowser/"):
		return "samsung internet", versionAfter(lower, "samsungbrowser/")
	case strings.Contains(lower, "firefox/"):
		return "firefox", versionAfter(lower, "firefox/")
	case strings.Contains(lower, "fxios/"):
		return "firefox", versionAfter(lower, "fxios/")
	case strings.Contains(lower, "crios/"):
		return "chrome", versionAfter(lower, "crios/")
	case strings.Contains(lower, "chrome/"):
		return "chrome", versionAfter(lower, "chrome/")
	case strings.Contains(lower, "safari/"):
		return "safari", versionAfter(lower, "version/")
	case strings.Contains(lower, "msie "):
		return "ie", versionAfter(lower, "msie ")
	case strings.Contains(lower, "trident/"):
		return "ie", versionAfter(lower, "rv:")
	default:
		return DeviceTypeUnknown, ""
	}
}

func detectDevice(lower, os string) (deviceType, model string) {
	switch {
	case strings.Contains(lower, "ipad"):
		return DeviceTypeTablet, "ipad"
	case strings.Contains(lower, "iphone"):
		return DeviceTypeMobile, "iphone"
	case strings.Contains(lower, "ipod"):
		return DeviceTypeMobile, "ipod"
	case strings.Contains(lower, "playstation"):
		return DeviceTypeConsole, "playstation"
	case strings.Contains(lower, "xbox"):
		return DeviceTypeConsole, "xbox"
	case strings.Contains(lower, "nintendo"):
		return DeviceTypeConsole, "nintendo"
	case containsAny(lower, "smart-tv", "smarttv", "googletv", "apple tv", "appletv", "hbbtv", "netcast", "roku", "bravia"):
		return DeviceTypeTV, ""
	case os == "android" && strings.Contains(lower, "mobile"):
		return DeviceTypeMobile, androidModel(lower)
	case os == "android":
		// Android without the Mobile token is a tablet.
		return DeviceTypeTablet, androidModel(lower)
	case strings.Contains(lower, "tablet"):
		return DeviceTypeTablet, ""
	case strings.Contains(lower, "mobile"):
		return DeviceTypeMobile, ""
	case os == "windows", os == "macos", os == "linux", os == "chromeos":
		return DeviceTypeDesktop, ""
	default:
		return DeviceTypeUnknown, ""
	}
}

// androidModel extracts the model from the segment after the Android version,
// as in "(Linux; Android 13; SM-G991B Build/TP1A...)".
func androidModel(lower string) string {
	idx := strings.Index(lower, "android")
	if idx < 0 {
		return ""
	}
	rest := lower[idx:]
	semi := strings.Index(rest, ";")
	if semi < 0 {
		return ""
	}
	rest = rest[semi+1:]
	if end := strings.IndexAny(rest, ");"); end >= 0 {
		rest = rest[:end]
	}
	if b := strings.Index(rest, " build/"); b >= 0 {
		rest = rest[:b]
	}
	model := strings.TrimSpace(rest)
	// "wv" marks a WebView, not a device model.
	if model == "wv" || strings.HasPrefix(model, "wv ") {
		return ""
	}
	return model
}

// versionAfter returns the digits-and-dots run immediately following marker.
func versionAfter(lower, marker string) string {
	idx := strings.Index(lower, marker)
	if idx < 0 {
		return ""
	}
	rest := lower[idx+len(marker):]
	end := 0
	for end < len(rest) {
		c := rest[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	return strings.Trim(rest[:end], ".")
}

func firstVersion(lower string, markers ...string) string {
	for _, m := range markers {
		if v := versionAfter(lower, m); v != "" {
			return v
		}
	}
	return ""
}

// productAround expands from a position to the full product token containing it.
func productAround(lower string, idx int) string {
	isProductChar := func(c byte) bool {
		return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_'
	}
	start := idx
	for start > 0 && isProductChar(lower[start-1]) {
		start--
	}
	end := idx
	for end < len(lower) && isProductChar(lower[end]) {
		end++
	}
	return lower[start:end]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
