package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
)

// WriteCheckDefinitions displays the registered checks. This is a static
// display that does not require any filesystem analysis.
func WriteCheckDefinitions(checks []*contract.Check, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONChecks(w, checks)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			writer := csv.NewWriter(w)
			defer writer.Flush()
			return writeCSVChecks(writer, checks)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextChecks(w, checks)
		}, "Wrote text")
	}
}

// writeTextChecks displays checks in human-readable text format.
func writeTextChecks(w io.Writer, checks []*contract.Check) error {
	if _, err := fmt.Fprintf(w, "🩺 Repocheck Checks\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "===================\n\n"); err != nil {
		return err
	}

	for _, chk := range checks {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", strings.ToUpper(string(chk.Name)), chk.Category); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   %s\n", chk.Description); err != nil {
			return err
		}
		extensions := "all known code extensions"
		if len(chk.Extensions) > 0 {
			extensions = strings.Join(chk.Extensions, ", ")
		}
		if _, err := fmt.Fprintf(w, "   Extensions: %s\n\n", extensions); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONChecks writes the check definitions in JSON format.
func writeJSONChecks(w io.Writer, checks []*contract.Check) error {
	type JSONCheck struct {
		Name        schema.CheckName `json:"name"`
		Category    string           `json:"category"`
		Description string           `json:"description"`
		Extensions  []string         `json:"extensions,omitempty"`
	}
	output := make([]JSONCheck, len(checks))
	for i, chk := range checks {
		output[i] = JSONCheck{
			Name:        chk.Name,
			Category:    chk.Category,
			Description: chk.Description,
			Extensions:  chk.Extensions,
		}
	}
	return writeJSON(w, output)
}

// writeCSVChecks writes the check definitions in CSV format.
func writeCSVChecks(w *csv.Writer, checks []*contract.Check) error {
	// Write header
	header := []string{"Name", "Category", "Description", "Extensions"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write each check
	for _, chk := range checks {
		record := []string{
			string(chk.Name),
			chk.Category,
			chk.Description,
			strings.Join(chk.Extensions, "|"),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}
