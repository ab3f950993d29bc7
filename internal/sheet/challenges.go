package sheet

import (
	"fmt"
	"strings"
)

// Header names for the create flow's challenge columns
var (
	nameHeaders  = []string{"name", "record name", "record", "txt record"}
	tokenHeaders = []string{"token", "value", "txt value"}
)

// Challenge is one DNS TXT record a domain must publish to prove ownership
type Challenge struct {
	Domain     string
	RecordName string
	Token      string
}

// ReadChallenges loads DNS challenges from a create-flow results
// spreadsheet. Rows without both a record name and a token are skipped;
// the create flow writes status markers like "Already Validated" into
// those cells for domains that need no record.
func ReadChallenges(path string) ([]Challenge, error) {
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

	domainIdx := findColumn(headers, domainHeaders)
	if domainIdx < 0 {
		domainIdx = 0
	}
	nameIdx := findColumn(headers, nameHeaders)
	tokenIdx := findColumn(headers, tokenHeaders)
	if nameIdx < 0 || tokenIdx < 0 {
		return nil, fmt.Errorf("%s has no challenge columns (need a name and a token column, available: %s)", path, strings.Join(headers, ", "))
	}

	var challenges []Challenge
	for _, row := range rows[1:] {
		c := Challenge{
			Domain:     strings.TrimSpace(cellAt(row, domainIdx)),
			RecordName: strings.TrimSpace(cellAt(row, nameIdx)),
			Token:      strings.TrimSpace(cellAt(row, tokenIdx)),
		}
		if c.RecordName == "" || c.Token == "" {
			continue
		}
		// Marker text never names a real DNS record
		if strings.Contains(c.RecordName, " ") {
			continue
		}
		challenges = append(challenges, c)
	}
	return challenges, nil
}
