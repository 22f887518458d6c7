package loots

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseAuthor normalizes a raw Loots author handle.
//
// Guest handles (case-insensitive "guest_" prefix) lose 6 leading and 10
// trailing characters, then all whitespace. Other handles only lose
// whitespace. A blank handle yields "" and ErrBlankAuthor.
//
// A guest handle too short for the fixed trim would come out empty. It is
// instead stripped of the prefix and any trailing digits, and returned
// together with ErrShortGuestHandle so the caller can log it.
func ParseAuthor(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrBlankAuthor
	}

	if !hasGuestPrefix(raw) {
		return deleteWhitespace(raw), nil
	}

	if len(raw) > GuestTrimLeading+GuestTrimTrail {
		return deleteWhitespace(raw[GuestTrimLeading : len(raw)-GuestTrimTrail]), nil
	}

	name := strings.TrimRightFunc(raw[len(GuestPrefix):], unicode.IsDigit)
	name = deleteWhitespace(name)
	if name == "" {
		return deleteWhitespace(raw), fmt.Errorf("%w: %q", ErrShortGuestHandle, raw)
	}
	return name, fmt.Errorf("%w: %q", ErrShortGuestHandle, raw)
}

func hasGuestPrefix(s string) bool {
	return len(s) >= len(GuestPrefix) && strings.EqualFold(s[:len(GuestPrefix)], GuestPrefix)
}

func deleteWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
