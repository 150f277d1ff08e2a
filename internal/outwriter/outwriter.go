// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteKpi prints the cycle KPI report using the configured output format.
func (ow *OutWriter) WriteKpi(report *schema.KpiReport, cfg *contract.Config, duration time.Duration) error {
	return PrintKpiReport(report, cfg, duration)
}

// WriteFeatures prints the feature movement report using the configured output format.
func (ow *OutWriter) WriteFeatures(report *schema.FeatureReport, cfg *contract.Config, duration time.Duration) error {
	return PrintFeatureReport(report, cfg, duration)
}

// WriteResolve prints the entity resolution result using the configured output format.
func (ow *OutWriter) WriteResolve(report *schema.ResolveReport, cfg *contract.Config, duration time.Duration) error {
	return PrintResolveReport(report, cfg, duration)
}

// WriteCycle prints the per-pod cycle resolution report using the configured output format.
func (ow *OutWriter) WriteCycle(report *schema.CycleReport, cfg *contract.Config, duration time.Duration) error {
	return PrintCycleReport(report, cfg, duration)
}
