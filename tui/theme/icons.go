package theme

import (
	"os"
)

// Nerd Font icons.
const (
	nerdIconSuccess   = "󰄬" // md-check (U+F012C)
	nerdIconError     = "" // cod-error (U+EA87)
	nerdIconWarning   = "" // fa-warning (U+F071)
	nerdIconInfo      = "󰋼" // md-information (U+F02FC)
	nerdIconSearch    = "" // fa-search (U+F002)
	nerdIconKey       = "" // fa-key (U+F084)
	nerdIconClipboard = "" // fa-clipboard (U+F0EA)
	nerdIconFile      = "" // fa-file (U+F15B)
	nerdIconReload    = "" // fa-refresh (U+F021)
)

// ASCII fallback icons.
const (
	asciiIconSuccess   = "✓"
	asciiIconError     = "✗"
	asciiIconWarning   = "!"
	asciiIconInfo      = "i"
	asciiIconSearch    = "/"
	asciiIconKey       = "*"
	asciiIconClipboard = "#"
	asciiIconFile      = "@"
	asciiIconReload    = "~"
)

// Icons in use, selected by UseASCIIIcons.
var (
	IconSuccess   string
	IconError     string
	IconWarning   string
	IconInfo      string
	IconSearch    string
	IconKey       string
	IconClipboard string
	IconFile      string
	IconReload    string
)

func init() {
	UseASCIIIcons(os.Getenv("JWTVIEW_ICONS") == "ascii")
}

// UseASCIIIcons switches between the Nerd Font and the ASCII icon sets.
func UseASCIIIcons(ascii bool) {
	if ascii {
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconSearch = asciiIconSearch
		IconKey = asciiIconKey
		IconClipboard = asciiIconClipboard
		IconFile = asciiIconFile
		IconReload = asciiIconReload
		return
	}
	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconWarning = nerdIconWarning
	IconInfo = nerdIconInfo
	IconSearch = nerdIconSearch
	IconKey = nerdIconKey
	IconClipboard = nerdIconClipboard
	IconFile = nerdIconFile
	IconReload = nerdIconReload
}
