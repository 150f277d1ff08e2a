package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"podpulse/schema"

	"github.com/fatih/color"
)

// Delivery label constants.
const (
	StrongValue   = "Strong"   // Strong delivery
	HealthyValue  = "Healthy"  // Healthy delivery
	AtRiskValue   = "At Risk"  // Delivery at risk
	OffTrackValue = "OffTrack" // Delivery off track
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgGreen, color.Bold) // strongColor represents on-target delivery.
	HealthyColor  = color.New(color.FgCyan)              // healthyColor represents acceptable delivery.
	AtRiskColor   = color.New(color.FgYellow)            // atRiskColor represents standard caution, not bold.
	OffTrackColor = color.New(color.FgRed, color.Bold)   // offTrackColor represents standard danger.
)

// GetPlainLabel returns a plain text label indicating delivery health
// based on the rounded delivery percentage. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(pct int) string {
	switch {
	case pct >= 90:
		return StrongValue
	case pct >= 70:
		return HealthyValue
	case pct >= 40:
		return AtRiskValue
	default:
		return OffTrackValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(pct int) string {
	text := GetPlainLabel(pct)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case HealthyValue:
		return HealthyColor.Sprint(text)
	case AtRiskValue:
		return AtRiskColor.Sprint(text)
	default: // "OffTrack"
		return OffTrackColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".podpulse_cache.db"
	}
	return filepath.Join(homeDir, ".podpulse_cache.db")
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".podpulse_snapshots.db"
	}
	return filepath.Join(homeDir, ".podpulse_snapshots.db")
}

// TruncateName truncates a project or pod name to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is space for both content
// and the "..." marker.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// GetStatusLabel returns a colored row status for table output.
func GetStatusLabel(status schema.RowStatus) string {
	switch status {
	case schema.StatusOK:
		return StrongColor.Sprint(string(status))
	case schema.StatusNoTeamID:
		return AtRiskColor.Sprint(string(status))
	default: // FETCH_FAILED
		return OffTrackColor.Sprint(string(status))
	}
}
