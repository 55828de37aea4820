package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactBaseName derives a filesystem-safe base name from a quotation
// number. Path separators are replaced so a hostile number can never escape
// the target directory.
func ArtifactBaseName(number string) string {
	s := strings.NewReplacer("/", "-", "\\", "-", "..", "-").Replace(number)
	s = strings.TrimSpace(s)
	if s == "" {
		s = "cotizacion"
	}
	return s
}

// RenderSpreadsheetFile renders the plan as a spreadsheet and commits it to
// dir/<number>.xlsx. On any error nothing is left at the target path.
func RenderSpreadsheetFile(plan *DocumentPlan, totals Totals, dir string) (string, error) {
	data, err := RenderSpreadsheet(plan, totals)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ArtifactBaseName(plan.Number)+".xlsx")
	if err := writeArtifact(path, data); err != nil {
		return "", &RenderError{Op: "spreadsheet", Err: err}
	}
	return path, nil
}

// RenderPrintFile renders the plan as a print document and commits it to
// dir/<number>.pdf. On any error nothing is left at the target path.
func RenderPrintFile(plan *DocumentPlan, totals Totals, dir string) (string, error) {
	data, err := RenderPrint(plan, totals)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ArtifactBaseName(plan.Number)+".pdf")
	if err := writeArtifact(path, data); err != nil {
		return "", &RenderError{Op: "print", Err: err}
	}
	return path, nil
}

// writeArtifact writes data to a temp file in the target directory and
// renames it into place, so the target path only ever holds a complete
// document.
func writeArtifact(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit artifact: %w", err)
	}
	return nil
}
