package useragent

import (
	"fmt"
	"strings"
)

// Device type values returned by UserAgent.DeviceType.
const (
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeBot     = "bot"
	DeviceTypeTV      = "tv"
	DeviceTypeConsole = "console"
	DeviceTypeUnknown = "unknown"
)

// UserAgent holds the classification extracted from a User-Agent string.
// All identifiers are lowercase canonical names ("mobile", "ios", "safari");
// use GetShortIdentifier for a human-readable summary.
type UserAgent struct {
	raw         string
	deviceType  string
	deviceModel string
	os          string
	browserName string
	browserVer  string
}

// New constructs a UserAgent from pre-classified values. It is mainly useful
// as a fallback when Parse fails but processing must continue:
//
//	ua = useragent.New(raw, "unknown", "", "unknown", "unknown", "")
func New(raw, deviceType, deviceModel, os, browserName, browserVer string) UserAgent {
	return UserAgent{
		raw:         raw,
		deviceType:  deviceType,
		deviceModel: deviceModel,
		os:          os,
		browserName: browserName,
		browserVer:  browserVer,
	}
}

// Raw returns the original User-Agent string the value was parsed from.
func (ua UserAgent) Raw() string { return ua.raw }

// DeviceType returns one of the DeviceType* constants.
func (ua UserAgent) DeviceType() string { return ua.deviceType }

// DeviceModel returns the device model when one could be extracted
// ("iphone", "ipad", "sm-g991b"), or an empty string.
func (ua UserAgent) DeviceModel() string { return ua.deviceModel }

// OS returns the operating system identifier ("windows", "macos", "ios",
// "android", "linux", "chromeos") or "unknown".
func (ua UserAgent) OS() string { return ua.os }

// BrowserName returns the browser identifier ("chrome", "safari", "firefox",
// "edge", "opera", "samsung internet", "ie"), the bot name for bot traffic,
// or "unknown".
func (ua UserAgent) BrowserName() string { return ua.browserName }

// BrowserVer returns the browser version as found in the string, or an empty
// string when no version was present.
func (ua UserAgent) BrowserVer() string { return ua.browserVer }

// IsMobile reports whether the device classified as a phone.
func (ua UserAgent) IsMobile() bool { return ua.deviceType == DeviceTypeMobile }

// IsTablet reports whether the device classified as a tablet.
func (ua UserAgent) IsTablet() bool { return ua.deviceType == DeviceTypeTablet }

// IsDesktop reports whether the device classified as a desktop computer.
func (ua UserAgent) IsDesktop() bool { return ua.deviceType == DeviceTypeDesktop }

// IsBot reports whether the string identified as a crawler, scraper, or
// automated HTTP client.
func (ua UserAgent) IsBot() bool { return ua.deviceType == DeviceTypeBot }

// GetShortIdentifier returns a compact human-readable description suitable
// for session listings and audit logs:
//
//	"Chrome/120.0 (Windows, desktop)"
//	"Safari/14.2 (iOS, mobile)"
//	"Bot: Googlebot"
//	"Unknown device"
func (ua UserAgent) GetShortIdentifier() string {
	if ua.IsBot() {
		return "Bot: " + displayName(ua.browserName)
	}
	if isUnknown(ua.browserName) && isUnknown(ua.os) {
		return "Unknown device"
	}

	browser := displayName(ua.browserName)
	if v := shortVersion(ua.browserVer); v != "" {
		browser += "/" + v
	}
	return fmt.Sprintf("%s (%s, %s)", browser, displayName(ua.os), ua.deviceType)
}

// displayNames maps canonical identifiers to their branded spelling. Anything
// missing falls back to simple capitalization.
var displayNames = map[string]string{
	"chrome":           "Chrome",
	"safari":           "Safari",
	"firefox":          "Firefox",
	"edge":             "Edge",
	"opera":            "Opera",
	"samsung internet": "Samsung Internet",
	"ie":               "Internet Explorer",
	"windows":          "Windows",
	"macos":            "macOS",
	"ios":              "iOS",
	"android":          "Android",
	"linux":            "Linux",
	"chromeos":         "ChromeOS",
	"googlebot":        "Googlebot",
	"bingbot":          "Bingbot",
	"yandexbot":        "YandexBot",
	"duckduckbot":      "DuckDuckBot",
	"baiduspider":      "Baiduspider",
	"applebot":         "Applebot",
	"facebookbot":      "FacebookBot",
	"twitterbot":       "Twitterbot",
	"linkedinbot":      "LinkedInBot",
	"telegrambot":      "TelegramBot",
	"slackbot":         "Slackbot",
	"discordbot":       "Discordbot",
	"whatsapp":         "WhatsApp",
	"curl":             "curl",
	"wget":             "Wget",
	"gptbot":           "GPTBot",
}

func displayName(s string) string {
	if d, ok := displayNames[s]; ok {
		return d
	}
	if isUnknown(s) {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func isUnknown(s string) bool {
	return s == "" || s == DeviceTypeUnknown
}

// shortVersion trims a full version string to major.minor for display.
func shortVersion(v string) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) >= 2 {
		return parts[0] + "." + parts[1]
	}
	return v
}
