package tui

import "unicode/utf8"

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// cycle advances value through options by delta, wrapping around.
func cycle(options []string, value string, delta int) string {
	if len(options) == 0 {
		return value
	}
	idx := 0
	for i, o := range options {
		if o == value {
			idx = i
			break
		}
	}
	idx = (idx + delta%len(options) + len(options)) % len(options)
	return options[idx]
}
