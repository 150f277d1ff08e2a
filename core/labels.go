package core

import "podpulse/schema"

// LabelSet is a set of label ids with O(1) membership checks. It is built
// once per fetched work item and reused across all six cycle classifications.
type LabelSet map[string]struct{}

// NewLabelSet collects the label ids of a work item into a set.
func NewLabelSet(labels []schema.Label) LabelSet {
	set := make(LabelSet, len(labels))
	for _, label := range labels {
		set[label.ID] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given label id.
func (s LabelSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IsCommitted reports whether a work item counts as committed for a cycle:
// it must carry the cycle's baseline label and must not carry the cancelled
// label. An unconfigured baseline label commits nothing.
func IsCommitted(set LabelSet, baselineLabelID, cancelledLabelID string) bool {
	if baselineLabelID == "" || !set.Has(baselineLabelID) {
		return false
	}
	if cancelledLabelID != "" && set.Has(cancelledLabelID) {
		return false
	}
	return true
}
