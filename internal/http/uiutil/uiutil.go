// Package uiutil holds small formatting helpers shared by templates and handlers.
package uiutil

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"
	FriendlyDateLayout     = "Jan 2, 2006"
)

// FriendlyRelativeTime describes t relative to now in whole units.
// Future times read "in 3 days", past times "3 days ago"; beyond a week the date is shown.
func FriendlyRelativeTime(t, now time.Time) string {
	diff := t.Sub(now)
	future := diff > 0
	if !future {
		diff = -diff
	}

	var n int
	var unit string
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		n, unit = int(diff.Minutes()), "minute"
	case diff < 24*time.Hour:
		n, unit = int(diff.Hours()), "hour"
	case diff < 7*24*time.Hour:
		n, unit = int(diff.Hours()/24), "day"
	default:
		return FormatFriendlyDate(t)
	}

	phrase := strconv.Itoa(n) + " " + unit
	if n != 1 {
		phrase += "s"
	}
	if future {
		return "in " + phrase
	}
	return phrase + " ago"
}

// FormatFriendlyDateTime returns a consistent, user-friendly local timestamp representation.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}

// FormatFriendlyDate renders the calendar date only.
func FormatFriendlyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateLayout)
}

// TruncateWithEllipsis shortens text to the provided rune limit and appends an ellipsis when truncated.
func TruncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

// Initials returns up to two upper-case letters for the avatar badge.
// Falls back to the first letter of fallback (usually the email) when both names are blank.
func Initials(first, last, fallback string) string {
	var b strings.Builder
	for _, part := range []string{first, last} {
		if r, ok := firstLetter(part); ok {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	if r, ok := firstLetter(fallback); ok {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

func firstLetter(s string) (rune, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, r != utf8.RuneError
}
