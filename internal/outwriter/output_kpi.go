package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintKpiReport outputs the cycle KPI report, dispatching based on the output format configured.
func PrintKpiReport(report *schema.KpiReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		// JSON always carries the full envelope, including failures
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		if err := writeKpiCSVResults(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeKpiTable(report, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeKpiTable generates and writes the human-readable table.
func writeKpiTable(report *schema.KpiReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if !report.Success {
		return writeReportError(writer, report.ErrorCode, report.ErrorMessage)
	}

	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Pod", "Cycle", "Committed", "Completed", "Delivery", "Spillover", "Label", "Status", "Frozen"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, r := range report.Rows {
		pct := deliveryPctValue(r.DeliveryPct)
		label := contract.GetPlainLabel(pct)
		status := string(r.Status)
		if cfg.UseColors {
			label = contract.GetColorLabel(pct)
			status = contract.GetStatusLabel(r.Status)
		}
		data = append(data, []string{
			r.Pod,
			string(r.Cycle),
			strconv.Itoa(r.Committed),
			strconv.Itoa(r.Completed),
			r.DeliveryPct,
			strconv.Itoa(r.Spillover),
			label,
			status,
			strconv.FormatBool(r.Frozen),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary lines
	if _, err := fmt.Fprintf(writer, "Quarter %s, current cycle %s", report.Quarter, report.CurrentCycle); err != nil {
		return err
	}
	if report.FallbackUsed {
		if _, err := fmt.Fprintf(writer, " (no committed work; showing %s instead)", report.FallbackCycle); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Computed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeKpiCSVResults handles opening the file and calling the CSV writer.
func writeKpiCSVResults(report *schema.KpiReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if !report.Success {
			return writeReportError(w, report.ErrorCode, report.ErrorMessage)
		}
		header := []string{
			"pod",
			"cycle",
			"committed",
			"completed",
			"delivery_pct",
			"spillover",
			"label",
			"status",
			"frozen",
			"fetched_at",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			fetchedAt := report.FetchedAt.Format(contract.DateTimeFormat)
			for _, r := range report.Rows {
				rec := []string{
					r.Pod,
					string(r.Cycle),
					strconv.Itoa(r.Committed),
					strconv.Itoa(r.Completed),
					r.DeliveryPct,
					strconv.Itoa(r.Spillover),
					contract.GetPlainLabel(deliveryPctValue(r.DeliveryPct)),
					string(r.Status),
					strconv.FormatBool(r.Frozen),
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

// deliveryPctValue parses the rendered percentage back into its integer value.
// Rows carry the display form, e.g. "75%".
func deliveryPctValue(s string) int {
	v, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0
	}
	return v
}
