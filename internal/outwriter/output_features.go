package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintFeatureReport outputs the feature movement report, dispatching based on the output format configured.
func PrintFeatureReport(report *schema.FeatureReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		if err := writeFeatureCSVResults(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFeatureTable(report, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeFeatureTable generates and writes the human-readable table.
func writeFeatureTable(report *schema.FeatureReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if !report.Success {
		return writeReportError(writer, report.ErrorCode, report.ErrorMessage)
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Pod", "Project", "State", "Raw State", "Lead", "Target", "Updated"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range report.Rows {
		data = append(data, []string{
			r.Pod,
			contract.TruncateName(r.Project, nameWidth),
			string(r.State),
			r.RawState,
			r.Lead,
			r.Target,
			r.UpdatedAt.Format(contract.CalendarDateFormat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
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
	if _, err := fmt.Fprintf(writer, "Showing %d projects. Computed in %v with %d workers.\n", len(report.Rows), duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeFeatureCSVResults handles opening the file and calling the CSV writer.
func writeFeatureCSVResults(report *schema.FeatureReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if !report.Success {
			return writeReportError(w, report.ErrorCode, report.ErrorMessage)
		}
		header := []string{
			"pod",
			"project",
			"state",
			"raw_state",
			"lead",
			"target",
			"updated_at",
			"fetched_at",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			fetchedAt := report.FetchedAt.Format(contract.DateTimeFormat)
			for _, r := range report.Rows {
				rec := []string{
					r.Pod,
					r.Project,
					string(r.State),
					r.RawState,
					r.Lead,
					r.Target,
					r.UpdatedAt.Format(contract.DateTimeFormat),
					fetchedAt,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// sortedPods returns the pod names of a status map in sorted order.
func sortedPods(status map[string]schema.RowStatus) []string {
	pods := make([]string, 0, len(status))
	for pod := range status {
		pods = append(pods, pod)
	}
	sort.Strings(pods)
	return pods
}
