package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthNumber reports the 1-based month when the token contains a full
// English month name. Abbreviations deliberately do not qualify; only a
// complete name marks the token as a period rather than a person.
func monthNumber(token string) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return 0, false
	}
	for i, name := range monthNames {
		if strings.Contains(t, name) {
			return i + 1, true
		}
	}
	return 0, false
}

var (
	numericPeriodPattern = regexp.MustCompile(`(\d{4})[-/ ]?(\d{1,2})`)
	namedPeriodPattern   = regexp.MustCompile(`([A-Za-z]+)\s*(\d{4})`)
)

// extractPeriod pulls a pay period out of free text and normalizes it to
// YYYY-MM. Accepted shapes: 2025-06, 2025/06, 2025 6, June 2025. Returns
// false when the text carries no recognizable period.
func extractPeriod(text string) (string, bool) {
	if m := numericPeriodPattern.FindStringSubmatch(text); m != nil {
		month, err := strconv.Atoi(m[2])
		if err == nil && month >= 1 && month <= 12 {
			return fmt.Sprintf("%s-%02d", m[1], month), true
		}
	}
	if m := namedPeriodPattern.FindStringSubmatch(text); m != nil {
		if month, ok := monthNumber(m[1]); ok {
			return fmt.Sprintf("%s-%02d", m[2], month), true
		}
	}
	return "", false
}
