package schema

// LabelConfig holds the tracker label identifiers that drive classification.
// CycleLabels is keyed by quarter (e.g. "Q1-26") and then by cycle key.
type LabelConfig struct {
	DelLabelID       string                         `json:"del_label_id"`
	CancelledLabelID string                         `json:"cancelled_label_id"`
	CycleLabels      map[string]map[CycleKey]string `json:"cycle_labels"`
}

// BaselineLabelID returns the committed-baseline label id for the given
// quarter and cycle, or "" when the pair is not configured.
func (lc LabelConfig) BaselineLabelID(quarter string, cycle CycleKey) string {
	cycles, ok := lc.CycleLabels[quarter]
	if !ok {
		return ""
	}
	return cycles[cycle]
}
