package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCycleReport outputs the per-pod cycle resolution report, dispatching based on the output format configured.
func PrintCycleReport(report *schema.CycleReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		if err := writeCycleCSVResults(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCycleTable(report, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeCycleTable generates and writes the human-readable table.
func writeCycleTable(report *schema.CycleReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if !report.Success {
		return writeReportError(writer, report.ErrorCode, report.ErrorMessage)
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"Pod", "Current Cycle", "Frozen", "Refreshable"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range report.Rows {
		data = append(data, []string{
			r.Pod,
			string(r.CurrentCycle),
			strconv.FormatBool(r.Frozen),
			strconv.FormatBool(r.Refreshable),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Freeze policy cycle: %s. Resolved in %v.\n", report.PolicyCycle, duration); err != nil {
		return err
	}
	return nil
}

// writeCycleCSVResults handles opening the file and calling the CSV writer.
func writeCycleCSVResults(report *schema.CycleReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if !report.Success {
			return writeReportError(w, report.ErrorCode, report.ErrorMessage)
		}
		header := []string{
			"pod",
			"current_cycle",
			"frozen",
			"refreshable",
			"policy_cycle",
			"fetched_at",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			fetchedAt := report.FetchedAt.Format(contract.DateTimeFormat)
			for _, r := range report.Rows {
				rec := []string{
					r.Pod,
					string(r.CurrentCycle),
					strconv.FormatBool(r.Frozen),
					strconv.FormatBool(r.Refreshable),
					string(report.PolicyCycle),
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
