package inspector

import (
	"strings"

	"github.com/mileusna/useragent"
)

// parsedUA is the browser/os/device triplet derived from a User-Agent
// header. All three fields are empty together when the header is absent or
// the parser recognizes nothing.
type parsedUA struct {
	browser string
	os      string
	device  string
}

// parseUserAgent parses a raw User-Agent value. It never fails outward: an
// empty or unrecognizable string yields the zero triplet.
func parseUserAgent(raw string) parsedUA {
	if raw == "" {
		return parsedUA{}
	}

	ua := useragent.Parse(raw)

	// The parsing table echoes unrecognized input back as Name. Only a
	// Name that comes with an OS, a device, or a device class counts as
	// a real parse; otherwise the triplet degrades to empty together.
	recognizedName := ua.Name != "" && ua.Name != raw
	hasDeviceClass := ua.Desktop || ua.Mobile || ua.Tablet || ua.Bot
	if !recognizedName && ua.OS == "" && ua.Device == "" && !hasDeviceClass {
		return parsedUA{}
	}

	browser := ua.Name
	if ua.Version != "" {
		browser += " " + ua.Version
	}

	os := ua.OS
	if ua.OSVersion != "" {
		os += " " + ua.OSVersion
	}

	device := ua.Device
	if device == "" {
		// The parsing table leaves Device empty for desktops.
		switch {
		case ua.Desktop:
			device = "desktop"
		case ua.Mobile:
			device = "mobile"
		case ua.Tablet:
			device = "tablet"
		case ua.Bot:
			device = "bot"
		}
	}

	return parsedUA{
		browser: strings.TrimSpace(browser),
		os:      strings.TrimSpace(os),
		device:  device,
	}
}
