// Package excelize exports search results as Excel workbooks.
package excelize

import (
	"context"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/csv"
	"github.com/xuri/excelize/v2"
)

var _ leadscout.Exporter = (*Exporter)(nil)

const (
	leadsSheet   = "Leads"
	sourcesSheet = "Sources"
)

// Exporter writes a search result to an Excel workbook with a Leads
// sheet and a Sources sheet.
type Exporter struct {
	// Path is the destination file. When empty, a name derived from the
	// search terms is used in the current directory.
	Path string
}

// Export writes the workbook and returns the file path.
func (e *Exporter) Export(_ context.Context, result *leadscout.Result) (string, error) {
	path := e.Path
	if path == "" {
		path = leadscout.ExportFilename(result.Search, "xlsx")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeLeadsSheet(f, result.Leads); err != nil {
		return "", err
	}
	if err := writeSourcesSheet(f, result.Sources); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", leadscout.Errorf(leadscout.EINTERNAL, "failed to write workbook: %v", err)
	}

	return path, nil
}

// writeLeadsSheet renames the default sheet to Leads and fills it with a
// header row in wire-key order followed by one row per lead. Rating and
// review count are written as numbers so spreadsheet sorting works.
func writeLeadsSheet(f *excelize.File, leads []*leadscout.Lead) error {
	if err := f.SetSheetName("Sheet1", leadsSheet); err != nil {
		return err
	}

	header := make([]any, len(csv.Columns))
	for i, column := range csv.Columns {
		header[i] = column
	}
	if err := setRow(f, leadsSheet, 1, header); err != nil {
		return err
	}
	if err := styleHeader(f, leadsSheet, len(csv.Columns)); err != nil {
		return err
	}

	// Name, address and website columns hold the longest values.
	if err := f.SetColWidth(leadsSheet, "A", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(leadsSheet, "C", "F", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(leadsSheet, "I", "I", 24); err != nil {
		return err
	}

	for i, lead := range leads {
		var rating any
		if lead.Rating != nil {
			rating = *lead.Rating
		}
		var reviewCount any
		if lead.ReviewCount != nil {
			reviewCount = *lead.ReviewCount
		}

		row := []any{
			lead.Name,
			lead.Address,
			lead.Phone,
			lead.Website,
			lead.Email,
			lead.Category,
			rating,
			reviewCount,
			lead.Hours,
		}
		if err := setRow(f, leadsSheet, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

// writeSourcesSheet adds a Sources sheet listing the grounding links.
func writeSourcesSheet(f *excelize.File, sources []leadscout.SourceRef) error {
	if _, err := f.NewSheet(sourcesSheet); err != nil {
		return err
	}

	if err := setRow(f, sourcesSheet, 1, []any{"uri", "title"}); err != nil {
		return err
	}
	if err := styleHeader(f, sourcesSheet, 2); err != nil {
		return err
	}
	if err := f.SetColWidth(sourcesSheet, "A", "B", 48); err != nil {
		return err
	}
	for i, source := range sources {
		if err := setRow(f, sourcesSheet, i+2, []any{source.URI, source.Title}); err != nil {
			return err
		}
	}

	return nil
}

// styleHeader bolds the first n cells of the sheet's header row.
func styleHeader(f *excelize.File, sheet string, n int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(n, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// setRow writes values into consecutive cells of one row.
func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
