package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"podpulse/schema"
)

// Default values for configuration.
const (
	DefaultCacheTTL    = 6 * time.Hour
	DefaultPolicyCycle = schema.CycleC2
	MaxWorkers         = 64
)

// CalendarDateFormat is the date representation used in cycle calendars.
const CalendarDateFormat = "2006-01-02"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for metric aggregation.
// This struct remains the "final, validated" config.
type Config struct {
	Pods      []schema.Pod
	Calendars map[string]schema.CycleCalendar // keyed by pod name
	Labels    schema.LabelConfig
	Quarter   string

	PolicyCycle schema.CycleKey // last cycle whose data freezes at the policy boundary
	TargetCycle schema.CycleKey // optional override for the resolved current cycle

	ResolveQuery string // positional argument of the resolve command

	CacheTTL time.Duration
	Workers  int

	TrackerEndpoint string
	TrackerToken    string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext
}

// PodRawInput is one pod entry from the config file.
type PodRawInput struct {
	Name         string `mapstructure:"name"`
	TeamID       string `mapstructure:"team-id"`
	InitiativeID string `mapstructure:"initiative-id"`
}

// CycleWindowRawInput is one cycle window entry from the config file.
// Dates are YYYY-MM-DD; the end date is inclusive.
type CycleWindowRawInput struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// LabelsRawInput holds the label identifier block from the config file.
type LabelsRawInput struct {
	Del       string                       `mapstructure:"del"`
	Cancelled string                       `mapstructure:"cancelled"`
	Cycles    map[string]map[string]string `mapstructure:"cycles"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ResolveQueryStr string

	// --- Fields from the config file only ---
	Pods      []PodRawInput                             `mapstructure:"pods"`
	Calendars map[string]map[string]CycleWindowRawInput `mapstructure:"calendars"`
	Labels    LabelsRawInput                            `mapstructure:"labels"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Quarter           string `mapstructure:"quarter"`
	PolicyCycle       string `mapstructure:"policy-cycle"`
	Cycle             string `mapstructure:"cycle"`
	CacheTTL          string `mapstructure:"cache-ttl"`
	Workers           int    `mapstructure:"workers"`
	TrackerEndpoint   string `mapstructure:"tracker-endpoint"`
	TrackerToken      string `mapstructure:"tracker-token"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Pods != nil {
		clone.Pods = slices.Clone(c.Pods)
	}
	if c.Calendars != nil {
		clone.Calendars = make(map[string]schema.CycleCalendar)
		for pod, cal := range c.Calendars {
			podCal := make(schema.CycleCalendar)
			maps.Copy(podCal, cal)
			clone.Calendars[pod] = podCal
		}
	}
	if c.Labels.CycleLabels != nil {
		clone.Labels.CycleLabels = make(map[string]map[schema.CycleKey]string)
		for quarter, cycles := range c.Labels.CycleLabels {
			quarterLabels := make(map[schema.CycleKey]string)
			maps.Copy(quarterLabels, cycles)
			clone.Labels.CycleLabels[quarter] = quarterLabels
		}
	}
	return &clone
}

// PodByName returns the configured pod with the given name, or nil.
func (c *Config) PodByName(name string) *schema.Pod {
	for i := range c.Pods {
		if c.Pods[i].Name == name {
			return &c.Pods[i]
		}
	}
	return nil
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPods(cfg, input); err != nil {
		return err
	}
	if err := processLabels(cfg, input); err != nil {
		return err
	}
	if err := processCalendars(cfg, input); err != nil {
		return err
	}
	if err := processCycleSelection(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and snapshot backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Snapshot Backend Validation ---
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if cfg.SnapshotBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
			return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
		}
		cfg.SnapshotDBConnect = input.SnapshotDBConnect
		if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
			return err
		}

		// Validate that cache and snapshot use different databases
		if cfg.CacheBackend == cfg.SnapshotBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				snapshotDBPath := cfg.SnapshotDBConnect
				if snapshotDBPath == "" {
					snapshotDBPath = GetSnapshotDBFilePath()
				}
				if cacheDBPath == snapshotDBPath {
					return fmt.Errorf("cache and snapshot storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-domain fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.TrackerEndpoint = strings.TrimSpace(input.TrackerEndpoint)
	cfg.TrackerToken = strings.TrimSpace(input.TrackerToken)
	cfg.ResolveQuery = input.ResolveQueryStr

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be greater than 0 and cannot exceed %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 3. Cache TTL Validation ---
	ttl, err := ParseTTLDuration(input.CacheTTL)
	if err != nil {
		return fmt.Errorf("invalid cache-ttl: %w", err)
	}
	cfg.CacheTTL = ttl

	// --- 4. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	return nil
}

// processPods validates the pod roster. Pods without a team id are kept so
// the KPI computation can report them as NO_TEAM_ID rather than drop them.
func processPods(cfg *Config, input *ConfigRawInput) error {
	cfg.Pods = cfg.Pods[:0]
	seen := make(map[string]struct{})
	for i, raw := range input.Pods {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return fmt.Errorf("pods[%d]: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate pod name '%s'", name)
		}
		seen[name] = struct{}{}
		cfg.Pods = append(cfg.Pods, schema.Pod{
			Name:         name,
			TeamID:       strings.TrimSpace(raw.TeamID),
			InitiativeID: strings.TrimSpace(raw.InitiativeID),
		})
	}
	return nil
}

// processLabels converts the raw label block into the final LabelConfig.
func processLabels(cfg *Config, input *ConfigRawInput) error {
	cfg.Labels.DelLabelID = strings.TrimSpace(input.Labels.Del)
	cfg.Labels.CancelledLabelID = strings.TrimSpace(input.Labels.Cancelled)
	cfg.Quarter = strings.TrimSpace(input.Quarter)

	cfg.Labels.CycleLabels = make(map[string]map[schema.CycleKey]string)
	for quarter, cycles := range input.Labels.Cycles {
		quarterLabels := make(map[schema.CycleKey]string)
		for cycleStr, labelID := range cycles {
			key := schema.CycleKey(strings.ToUpper(strings.TrimSpace(cycleStr)))
			if _, ok := schema.ValidCycleKeys[key]; !ok {
				return fmt.Errorf("labels.cycles.%s: invalid cycle key '%s'. must be C1..C6", quarter, cycleStr)
			}
			quarterLabels[key] = strings.TrimSpace(labelID)
		}
		cfg.Labels.CycleLabels[quarter] = quarterLabels
	}

	return nil
}

// processCalendars parses and validates the per-pod cycle calendars.
// Calendar dates are inclusive on both ends; the end date expands to the last
// instant of that day so timestamp comparisons stay closed-interval.
func processCalendars(cfg *Config, input *ConfigRawInput) error {
	cfg.Calendars = make(map[string]schema.CycleCalendar)

	for podName, rawCal := range input.Calendars {
		if cfg.PodByName(podName) == nil {
			return fmt.Errorf("calendars: unknown pod '%s'", podName)
		}

		cal := make(schema.CycleCalendar)
		for cycleStr, rawWindow := range rawCal {
			key := schema.CycleKey(strings.ToUpper(strings.TrimSpace(cycleStr)))
			if _, ok := schema.ValidCycleKeys[key]; !ok {
				return fmt.Errorf("calendars.%s: invalid cycle key '%s'. must be C1..C6", podName, cycleStr)
			}

			start, err := time.Parse(CalendarDateFormat, rawWindow.Start)
			if err != nil {
				return fmt.Errorf("calendars.%s.%s: invalid start date '%s': %w", podName, key, rawWindow.Start, err)
			}
			end, err := time.Parse(CalendarDateFormat, rawWindow.End)
			if err != nil {
				return fmt.Errorf("calendars.%s.%s: invalid end date '%s': %w", podName, key, rawWindow.End, err)
			}
			// Expand the inclusive end date to the last instant of the day.
			end = end.Add(24*time.Hour - time.Nanosecond)

			if end.Before(start) {
				return fmt.Errorf("calendars.%s.%s: end date precedes start date", podName, key)
			}
			cal[key] = schema.CycleWindow{Start: start, End: end}
		}

		// Cycles must not overlap: each configured cycle must start after the
		// previous configured one ends.
		var prev *schema.CycleWindow
		var prevKey schema.CycleKey
		for _, key := range schema.CycleOrder {
			w, ok := cal[key]
			if !ok {
				continue
			}
			if prev != nil && !w.Start.After(prev.End) {
				return fmt.Errorf("calendars.%s: cycle %s overlaps cycle %s", podName, key, prevKey)
			}
			prev = &w
			prevKey = key
		}

		cfg.Calendars[podName] = cal
	}

	return nil
}

// processCycleSelection handles the policy cycle and the optional cycle override.
func processCycleSelection(cfg *Config, input *ConfigRawInput) error {
	policy := schema.CycleKey(strings.ToUpper(strings.TrimSpace(input.PolicyCycle)))
	if policy == "" {
		policy = DefaultPolicyCycle
	}
	if _, ok := schema.ValidCycleKeys[policy]; !ok {
		return fmt.Errorf("invalid policy cycle '%s'. must be C1..C6", input.PolicyCycle)
	}
	cfg.PolicyCycle = policy

	if override := strings.ToUpper(strings.TrimSpace(input.Cycle)); override != "" {
		key := schema.CycleKey(override)
		if _, ok := schema.ValidCycleKeys[key]; !ok {
			return fmt.Errorf("invalid --cycle value '%s'. must be C1..C6", input.Cycle)
		}
		cfg.TargetCycle = key
	}

	return nil
}
