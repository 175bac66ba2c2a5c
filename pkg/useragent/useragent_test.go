package useragent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/useragent"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		ua          string
		deviceType  string
		deviceModel string
		os          string
		browserName string
		browserVer  string
	}{
		{
			name:        "iPhone Safari",
			ua:          "Mozilla/5.0 (iPhone; CPU iPhone OS 14_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.2 Mobile/15E148 Safari/604.1",
			deviceType:  useragent.DeviceTypeMobile,
			deviceModel: "iphone",
			os:          "ios",
			browserName: "safari",
			browserVer:  "14.2",
		},
		{
			name:        "Android phone Chrome",
			ua:          "Mozilla/5.0 (Linux; Android 13; SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			deviceType:  useragent.DeviceTypeMobile,
			deviceModel: "sm-g991b",
			os:          "android",
			browserName: "chrome",
			browserVer:  "120.0.0.0",
		},
		{
			name:        "Android tablet Chrome",
			ua:          "Mozilla/5.0 (Linux; Android 13; SM-X906C Build/TP1A.220624.014) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36",
			deviceType:  useragent.DeviceTypeTablet,
			deviceModel: "sm-x906c",
			os:          "android",
			browserName: "chrome",
			browserVer:  "112.0.0.0",
		},
		{
			name:        "iPad Safari",
			ua:          "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
			deviceType:  useragent.DeviceTypeTablet,
			deviceModel: "ipad",
			os:          "ios",
			browserName: "safari",
			browserVer:  "16.6",
		},
		{
			name:        "Windows Chrome",
			ua:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			deviceType:  useragent.DeviceTypeDesktop,
			os:          "windows",
			browserName: "chrome",
			browserVer:  "120.0.0.0",
		},
		{
			name:        "macOS Safari",
			ua:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			deviceType:  useragent.DeviceTypeDesktop,
			os:          "macos",
			browserName: "safari",
			browserVer:  "17.0",
		},
		{
			name:        "Linux Firefox",
			ua:          "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			deviceType:  useragent.DeviceTypeDesktop,
			os:          "linux",
			browserName: "firefox",
			browserVer:  "121.0",
		},
		{
			name:        "Windows Edge",
			ua:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91",
			deviceType:  useragent.DeviceTypeDesktop,
			os:          "windows",
			browserName: "edge",
			browserVer:  "120.0.2210.91",
		},
		{
			name:        "Windows Opera",
			ua:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 OPR/106.0.0.0",
			deviceType:  useragent.DeviceTypeDesktop,
			os:          "windows",
			browserName: "opera",
			browserVer:  "106.0.0.0",
		},
		{
			name:        "ChromeOS",
			ua:          "Mozilla/5.0 (X11; CrOS x86_64 14541.0.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			deviceType:  useragent.DeviceTypeDesktop,
			os:          "chromeos",
			browserName: "chrome",
			browserVer:  "120.0.0.0",
		},
		{
			name:        "Samsung Internet on phone",
			ua:          "Mozilla/5.0 (Linux; Android 13; SM-S918B) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/23.0 Chrome/115.0.0.0 Mobile Safari/537.36",
			deviceType:  useragent.DeviceTypeMobile,
			deviceModel: "sm-s918b",
			os:          "android",
			browserName: "samsung internet",
			browserVer:  "23.0",
		},
		{
			name:        "Internet Explorer 11",
			ua:          "Mozilla/5.0 (Windows NT 10.0; Trident/7.0; rv:11.0) like Gecko",
			deviceType:  useragent.DeviceTypeDesktop,
			os:          "windows",
			browserName: "ie",
			browserVer:  "11.0",
		},
		{
			name:        "PlayStation console",
			ua:          "Mozilla/5.0 (PlayStation; PlayStation 5/2.26) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/13.0 Safari/605.1.15",
			deviceType:  useragent.DeviceTypeConsole,
			deviceModel: "playstation",
			os:          useragent.DeviceTypeUnknown,
			browserName: "safari",
			browserVer:  "13.0",
		},
		{
			name:        "Samsung smart TV",
			ua:          "Mozilla/5.0 (SMART-TV; Linux; Tizen 2.4.0) AppleWebKit/538.1 (KHTML, like Gecko) Version/2.4.0 TV Safari/538.1",
			deviceType:  useragent.DeviceTypeTV,
			os:          "linux",
			browserName: "safari",
			browserVer:  "2.4.0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ua, err := useragent.Parse(tc.ua)
			require.NoError(t, err)

			assert.Equal(t, tc.deviceType, ua.DeviceType())
			assert.Equal(t, tc.deviceModel, ua.DeviceModel())
			assert.Equal(t, tc.os, ua.OS())
			assert.Equal(t, tc.browserName, ua.BrowserName())
			assert.Equal(t, tc.browserVer, ua.BrowserVer())
			assert.Equal(t, tc.ua, ua.Raw())
		})
	}
}

func TestParseBots(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		ua         string
		botName    string
		botVersion string
	}{
		{
			name:       "Googlebot",
			ua:         "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			botName:    "googlebot",
			botVersion: "2.1",
		},
		{
			name:    "Bingbot",
			ua:      "Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm) Chrome/103.0.5060.134 Safari/537.36",
			botName: "bingbot", botVersion: "2.0",
		},
		{
			name:    "AhrefsBot",
			ua:      "Mozilla/5.0 (compatible; AhrefsBot/7.0; +http://ahrefs.com/robot/)",
			botName: "ahrefsbot", botVersion: "7.0",
		},
		{
			name:    "curl",
			ua:      "curl/7.64.1",
			botName: "curl", botVersion: "7.64.1",
		},
		{
			name:    "Go HTTP client",
			ua:      "Go-http-client/2.0",
			botName: "go-http-client", botVersion: "2.0",
		},
		{
			name:    "python requests",
			ua:      "python-requests/2.31.0",
			botName: "python-requests", botVersion: "2.31.0",
		},
		{
			name:    "unlisted bot via generic marker",
			ua:      "MyCustomBot/2.0 (+https://example.com/bot)",
			botName: "mycustombot", botVersion: "2.0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ua, err := useragent.Parse(tc.ua)
			require.NoError(t, err)

			assert.True(t, ua.IsBot(), "should classify as bot")
			assert.Equal(t, useragent.DeviceTypeBot, ua.DeviceType())
			assert.Equal(t, tc.botName, ua.BrowserName())
			assert.Equal(t, tc.botVersion, ua.BrowserVer())
			assert.False(t, ua.IsMobile())
			assert.False(t, ua.IsDesktop())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty string", func(t *testing.T) {
		t.Parallel()
		_, err := useragent.Parse("")
		assert.ErrorIs(t, err, useragent.ErrEmptyUserAgent)
	})

	t.Run("whitespace only", func(t *testing.T) {
		t.Parallel()
		_, err := useragent.Parse("   \t ")
		assert.ErrorIs(t, err, useragent.ErrEmptyUserAgent)
	})

	t.Run("no letters", func(t *testing.T) {
		t.Parallel()
		_, err := useragent.Parse("1234 !@#$%")
		assert.ErrorIs(t, err, useragent.ErrMalformedUserAgent)
	})

	t.Run("control characters", func(t *testing.T) {
		t.Parallel()
		_, err := useragent.Parse("Mozilla/5.0\x00(Windows)")
		assert.ErrorIs(t, err, useragent.ErrMalformedUserAgent)
	})

	t.Run("nothing identifiable", func(t *testing.T) {
		t.Parallel()
		_, err := useragent.Parse("Mozilla/5.0 (compatible)")
		assert.ErrorIs(t, err, useragent.ErrUnknownDevice)
	})
}

func TestConvenienceMethods(t *testing.T) {
	t.Parallel()

	t.Run("mobile flags", func(t *testing.T) {
		t.Parallel()
		ua, err := useragent.Parse("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
		require.NoError(t, err)

		assert.True(t, ua.IsMobile())
		assert.False(t, ua.IsTablet())
		assert.False(t, ua.IsDesktop())
		assert.False(t, ua.IsBot())
	})

	t.Run("tablet flags", func(t *testing.T) {
		t.Parallel()
		ua, err := useragent.Parse("Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1")
		require.NoError(t, err)

		assert.True(t, ua.IsTablet())
		assert.False(t, ua.IsMobile())
	})

	t.Run("desktop flags", func(t *testing.T) {
		t.Parallel()
		ua, err := useragent.Parse("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		require.NoError(t, err)

		assert.True(t, ua.IsDesktop())
		assert.False(t, ua.IsMobile())
		assert.False(t, ua.IsBot())
	})
}

func TestGetShortIdentifier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "desktop browser",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want: "Chrome/120.0 (Windows, desktop)",
		},
		{
			name: "mobile browser",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 14_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.2 Mobile/15E148 Safari/604.1",
			want: "Safari/14.2 (iOS, mobile)",
		},
		{
			name: "known bot",
			ua:   "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			want: "Bot: Googlebot",
		},
		{
			name: "http tool",
			ua:   "curl/7.64.1",
			want: "Bot: curl",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ua, err := useragent.Parse(tc.ua)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ua.GetShortIdentifier())
		})
	}

	t.Run("fallback value reads as unknown device", func(t *testing.T) {
		t.Parallel()
		ua := useragent.New("Weird/1.0", useragent.DeviceTypeUnknown, "", useragent.DeviceTypeUnknown, useragent.DeviceTypeUnknown, "")
		assert.Equal(t, "Unknown device", ua.GetShortIdentifier())
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	ua := useragent.New("raw-string", useragent.DeviceTypeMobile, "pixel 8", "android", "chrome", "121.0")

	assert.Equal(t, "raw-string", ua.Raw())
	assert.Equal(t, useragent.DeviceTypeMobile, ua.DeviceType())
	assert.Equal(t, "pixel 8", ua.DeviceModel())
	assert.Equal(t, "android", ua.OS())
	assert.Equal(t, "chrome", ua.BrowserName())
	assert.Equal(t, "121.0", ua.BrowserVer())
	assert.True(t, ua.IsMobile())
}

func BenchmarkParse(b *testing.B) {
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	b.ResetTimer()
	for b.Loop() {
		_, _ = useragent.Parse(ua)
	}
}

func BenchmarkParseBot(b *testing.B) {
	ua := "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

	b.ResetTimer()
	for b.Loop() {
		_, _ = useragent.Parse(ua)
	}
}
