package rendering

import "strings"

// stripControl drops characters XML 1.0 forbids in character data. Text
// extracted from PDFs carries them, and the XML encoder would otherwise turn
// each one into U+FFFD. Tabs and line breaks are kept.
func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20 || r == 0xFFFE || r == 0xFFFF:
			return -1
		default:
			return r
		}
	}, text)
}
