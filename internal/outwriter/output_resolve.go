package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"
)

// PrintResolveReport outputs the entity resolution result, dispatching based on the output format configured.
func PrintResolveReport(report *schema.ResolveReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		if err := writeResolveCSVResults(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResolveText(report, cfg, duration, w)
		}, "Wrote text")
	}
}

// writeResolveText displays the resolution result in human-readable text format.
func writeResolveText(report *schema.ResolveReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if !report.Success {
		return writeReportError(writer, report.ErrorCode, report.ErrorMessage)
	}

	if _, err := fmt.Fprintf(writer, "Query: %q\n", report.Query); err != nil {
		return err
	}

	if report.Match == nil {
		if _, err := fmt.Fprintf(writer, "No match found\n"); err != nil {
			return err
		}
	} else {
		m := report.Match
		if _, err := fmt.Fprintf(writer, "Matched: %s (pod %s, score %d)\n", m.Project.Name, m.Pod, m.Score); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "  ID: %s\n", m.Project.ID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(writer, "  State: %s\n", m.Project.State); err != nil {
			return err
		}
		if m.Project.Lead != "" {
			if _, err := fmt.Fprintf(writer, "  Lead: %s\n", m.Project.Lead); err != nil {
				return err
			}
		}
		if m.Project.TargetDate != "" {
			if _, err := fmt.Fprintf(writer, "  Target: %s\n", m.Project.TargetDate); err != nil {
				return err
			}
		}
	}

	// Per-pod fetch outcomes, sorted for stable output
	for _, pod := range sortedPods(report.PodStatus) {
		status := report.PodStatus[pod]
		if status == schema.StatusOK {
			continue
		}
		if _, err := fmt.Fprintf(writer, "Pod %s: %s\n", pod, status); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Resolved in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeResolveCSVResults handles opening the file and calling the CSV writer.
func writeResolveCSVResults(report *schema.ResolveReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if !report.Success {
			return writeReportError(w, report.ErrorCode, report.ErrorMessage)
		}
		header := []string{
			"query",
			"pod",
			"project_id",
			"project",
			"score",
			"state",
			"lead",
			"target",
			"fetched_at",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			if report.Match == nil {
				return nil
			}
			m := report.Match
			rec := []string{
				report.Query,
				m.Pod,
				m.Project.ID,
				m.Project.Name,
				strconv.Itoa(m.Score),
				m.Project.State,
				m.Project.Lead,
				m.Project.TargetDate,
				report.FetchedAt.Format(contract.DateTimeFormat),
			}
			return csvWriter.Write(rec)
		})
	}, "Wrote CSV")
}
