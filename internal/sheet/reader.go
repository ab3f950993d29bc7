// Package sheet reads validation targets from and writes results to
// spreadsheet files. Both .xlsx and .csv are supported, chosen by file
// extension.
package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

// Header names matched case-insensitively when locating columns
var (
	domainHeaders = []string{"domain", "hostname", "domainname", "domain name"}
	scopeHeaders  = []string{"validationscope", "scope", "validation scope"}
)

// ReadOptions controls target loading
type ReadOptions struct {
	// RequireScope makes a missing scope column an error instead of
	// defaulting every row to DOMAIN. The delete flow requires it so a
	// wrong-scope deletion can never happen silently.
	RequireScope bool
}

// ReadReport is the result of loading targets from a spreadsheet, including
// which columns were used so callers can warn about guessed ones
type ReadReport struct {
	Targets []model.Target

	DomainColumn string
	ScopeColumn  string
	// DomainGuessed is set when no recognized domain header was found and
	// the first column was used instead
	DomainGuessed bool
	// ScopeDefaulted is set when no scope column was found and every row
	// defaulted to DOMAIN
	ScopeDefaulted bool
	// Skipped counts rows dropped for a blank domain cell
	Skipped int
}

// ReadTargets loads validation targets from an .xlsx or .csv file. The
// first row is treated as headers; the domain column is located by a
// case-insensitive name match with a first-column fallback, the scope
// column likewise with a DOMAIN default. Values are normalized and rows
// with blank domains skipped.
func ReadTargets(path string, opts ReadOptions) (*ReadReport, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s contains no rows", path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	report := &ReadReport{}

	domainIdx := findColumn(headers, domainHeaders)
	if domainIdx < 0 {
		domainIdx = 0
		report.DomainGuessed = true
	}
	report.DomainColumn = headers[domainIdx]

	scopeIdx := findColumn(headers, scopeHeaders)
	if scopeIdx < 0 {
		if opts.RequireScope {
			return nil, fmt.Errorf("validationScope column required but not found in %s (available columns: %s)", path, strings.Join(headers, ", "))
		}
		report.ScopeDefaulted = true
	} else {
		report.ScopeColumn = headers[scopeIdx]
	}

	for _, row := range rows[1:] {
		scope := ""
		if scopeIdx >= 0 {
			scope = cellAt(row, scopeIdx)
		}
		target, ok := model.NewTarget(cellAt(row, domainIdx), scope)
		if !ok {
			report.Skipped++
			continue
		}
		report.Targets = append(report.Targets, target)
	}

	return report, nil
}

// findColumn returns the index of the first header whose lowercased form
// is in the candidate list, or -1
func findColumn(headers, candidates []string) int {
	for i, h := range headers {
		lowered := strings.ToLower(h)
		for _, c := range candidates {
			if lowered == c {
				return i
			}
		}
	}
	return -1
}

// cellAt tolerates the ragged rows spreadsheet libraries produce: trailing
// empty cells are simply absent
func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// readRows loads the raw cell grid from a .csv or .xlsx file
func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return rows, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
