package duration

import (
	"strconv"
	"strings"
	"time"
)

// Parse reads value as a duration. It accepts everything time.ParseDuration
// accepts plus d (days) and w (weeks), including mixed terms such as "1d12h"
// or "1.5d". The boolean is false when value is empty or malformed.
func Parse(value string) (time.Duration, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}

	if d, err := time.ParseDuration(trimmed); err == nil {
		return d, true
	}

	rewritten, ok := rewriteExtended(trimmed)
	if !ok {
		return 0, false
	}
	d, err := time.ParseDuration(rewritten)
	if err != nil {
		return 0, false
	}
	return d, true
}

// rewriteExtended converts d and w terms into hour terms so the stdlib
// parser can take it from there: "2d3h" becomes "48h3h". Whitespace between
// terms is tolerated, interior signs are not.
func rewriteExtended(s string) (string, bool) {
	var b strings.Builder

	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		b.WriteByte(rest[0])
		rest = strings.TrimSpace(rest[1:])
	}

	seen := false
	for rest != "" {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			break
		}

		numEnd := scanNumber(rest)
		if numEnd == 0 {
			return "", false
		}
		num := rest[:numEnd]

		unitEnd := scanUnit(rest[numEnd:])
		if unitEnd == 0 {
			return "", false
		}
		unit := rest[numEnd : numEnd+unitEnd]

		switch strings.ToLower(unit) {
		case "d":
			term, ok := hoursTerm(num, 24)
			if !ok {
				return "", false
			}
			b.WriteString(term)
		case "w":
			term, ok := hoursTerm(num, 7*24)
			if !ok {
				return "", false
			}
			b.WriteString(term)
		default:
			b.WriteString(num)
			b.WriteString(unit)
		}

		seen = true
		rest = rest[numEnd+unitEnd:]
	}

	if !seen {
		return "", false
	}
	return b.String(), true
}

func hoursTerm(num string, factor float64) (string, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(n*factor, 'f', -1, 64) + "h", true
}

func scanNumber(s string) int {
	dotSeen := false
	digitSeen := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			digitSeen = true
		case ch == '.' && !dotSeen:
			dotSeen = true
		default:
			if !digitSeen {
				return 0
			}
			return i
		}
	}
	if !digitSeen {
		return 0
	}
	return len(s)
}

// scanUnit returns the length of the contiguous alphabetic unit suffix.
// Example: "h30m" -> 1 (unit "h").
func scanUnit(s string) int {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') {
			return i
		}
	}
	return len(s)
}
