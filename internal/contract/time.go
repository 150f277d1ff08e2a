package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Define the regular expression to capture "N [units]".
var ttlDurationRe = regexp.MustCompile(`^(\d+)\s+(week|day|hour|minute)s?$`)

// ParseTTLDuration converts strings like "6 hours" or "30m" into a single time.Duration.
// It first tries Go's built-in time.ParseDuration for standard formats, then falls back
// to custom parsing for human-readable formats.
func ParseTTLDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	// Try Go's built-in duration parsing first (e.g., "6h", "90m")
	if duration, err := time.ParseDuration(s); err == nil {
		if duration <= 0 {
			return 0, errors.New("cache TTL must be positive")
		}
		return duration, nil
	}

	// Fall back to custom parsing for human-readable formats (e.g., "6 hours", "2 days")
	s = strings.ToLower(s)
	matches := ttlDurationRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid TTL duration format: %s", s)
	}

	// 1: Value (e.g., "6")
	// 2: Unit (e.g., "hour")
	value, _ := strconv.Atoi(matches[1])
	if value == 0 {
		return 0, errors.New("cache TTL must be positive")
	}
	unit := matches[2]

	switch unit {
	case "week":
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case "day":
		return time.Duration(value) * 24 * time.Hour, nil
	case "hour":
		return time.Duration(value) * time.Hour, nil
	case "minute":
		return time.Duration(value) * time.Minute, nil
	default:
		// Should be caught by the regex, but good for safety
		return 0, fmt.Errorf("unsupported time unit: %s", unit)
	}
}
