package tui

import (
	"strings"
	"testing"
)

func TestEditRuneAppends(t *testing.T) {
	if got := editRune("hell", "o"); got != "hello" {
		t.Errorf("editRune append = %q, want %q", got, "hello")
	}
}

func TestEditRuneBackspace(t *testing.T) {
	if got := editRune("hello", "backspace"); got != "hell" {
		t.Errorf("editRune backspace = %q, want %q", got, "hell")
	}
	if got := editRune("", "backspace"); got != "" {
		t.Errorf("editRune backspace on empty = %q, want empty", got)
	}
}

func TestEditRuneBackspaceMultibyte(t *testing.T) {
	if got := editRune("héllo", "backspace"); got != "héll" {
		t.Errorf("editRune backspace = %q, want %q", got, "héll")
	}
}

func TestEditRuneIgnoresSpecialKeys(t *testing.T) {
	for _, key := range []string{"enter", "esc", "tab", "up", "ctrl+c"} {
		if got := editRune("text", key); got != "text" {
			t.Errorf("editRune(%q) = %q, want unchanged", key, got)
		}
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	long := strings.Repeat("a", maxInputLen)
	if got := editRune(long, "b"); len(got) != maxInputLen {
		t.Errorf("editRune should clamp at %d runes, got %d", maxInputLen, len(got))
	}
}

func TestCycleWraps(t *testing.T) {
	opts := []string{"a", "b", "c"}
	if got := cycle(opts, "c", 1); got != "a" {
		t.Errorf("cycle forward wrap = %q, want %q", got, "a")
	}
	if got := cycle(opts, "a", -1); got != "c" {
		t.Errorf("cycle backward wrap = %q, want %q", got, "c")
	}
}

func TestCycleUnknownValueStartsAtFirst(t *testing.T) {
	opts := []string{"a", "b"}
	if got := cycle(opts, "zzz", 1); got != "b" {
		t.Errorf("cycle from unknown = %q, want %q", got, "b")
	}
}

func TestCycleEmptyOptions(t *testing.T) {
	if got := cycle(nil, "x", 1); got != "x" {
		t.Errorf("cycle with no options = %q, want original", got)
	}
}

func TestEditDigitsRejectsLetters(t *testing.T) {
	if got := editDigits("42", "a"); got != "42" {
		t.Errorf("editDigits letter = %q, want unchanged", got)
	}
	if got := editDigits("42", "7"); got != "427" {
		t.Errorf("editDigits digit = %q, want %q", got, "427")
	}
	if got := editDigits("42", "backspace"); got != "4" {
		t.Errorf("editDigits backspace = %q, want %q", got, "4")
	}
}
