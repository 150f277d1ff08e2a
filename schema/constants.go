package schema

// Custom string types for type safety.
type (
	// CycleKey identifies one of the six delivery cycles in a quarter.
	CycleKey string

	// RowStatus represents the outcome of computing a single pod result.
	RowStatus string

	// FeatureState is the normalized lifecycle state of a project.
	FeatureState string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All cycle keys, in calendar order.
const (
	CycleC1 CycleKey = "C1"
	CycleC2 CycleKey = "C2"
	CycleC3 CycleKey = "C3"
	CycleC4 CycleKey = "C4"
	CycleC5 CycleKey = "C5"
	CycleC6 CycleKey = "C6"
)

// CycleOrder lists all cycle keys in calendar order. Iteration over cycles
// must use this slice so results stay deterministic.
var CycleOrder = []CycleKey{CycleC1, CycleC2, CycleC3, CycleC4, CycleC5, CycleC6}

// All row statuses supported.
const (
	StatusOK           RowStatus = "OK"
	StatusNoTeamID     RowStatus = "NO_TEAM_ID"
	StatusNoInitiative RowStatus = "NO_INITIATIVE_ID"
	StatusFetchFailed  RowStatus = "FETCH_FAILED"
)

// All normalized feature states.
const (
	StateDone       FeatureState = "done"
	StateInFlight   FeatureState = "in_flight"
	StateNotStarted FeatureState = "not_started"
	StateCancelled  FeatureState = "cancelled"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidCycleKeys lists all valid cycle keys.
var ValidCycleKeys = map[CycleKey]struct{}{
	CycleC1: {},
	CycleC2: {},
	CycleC3: {},
	CycleC4: {},
	CycleC5: {},
	CycleC6: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CycleIndex returns the position of the given cycle in CycleOrder,
// or -1 when the key is unknown.
func CycleIndex(key CycleKey) int {
	for i, k := range CycleOrder {
		if k == key {
			return i
		}
	}
	return -1
}
