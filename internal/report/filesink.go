package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
	"github.com/JCoe77/akamai-dom-automation/internal/sheet"
)

// FileSink writes outcomes to a spreadsheet or JSON file
type FileSink struct {
	path string
	flow Flow
}

// NewFileSink creates a sink for the given output path. The format is
// chosen by extension: .json produces a JSON document, anything else goes
// through the spreadsheet writer (.csv or .xlsx).
func NewFileSink(path string, flow Flow) *FileSink {
	return &FileSink{path: path, flow: flow}
}

// Describe implements Sink
func (s *FileSink) Describe() string {
	return s.path
}

// jsonRecord is the JSON file shape of one outcome
type jsonRecord struct {
	Domain      string `json:"domain"`
	Scope       string `json:"validationScope"`
	StatusCode  string `json:"statusCode"`
	Result      string `json:"result"`
	Name        string `json:"name,omitempty"`
	Token       string `json:"token,omitempty"`
	Details     string `json:"details,omitempty"`
	ErrorTitle  string `json:"errorTitle,omitempty"`
	ErrorDetail string `json:"errorDetail,omitempty"`
}

type jsonDocument struct {
	Flow      string       `json:"flow"`
	WrittenAt time.Time    `json:"writtenAt"`
	Outcomes  []jsonRecord `json:"outcomes"`
}

// Store implements Sink
func (s *FileSink) Store(_ context.Context, outcomes []model.Outcome) error {
	if strings.EqualFold(filepath.Ext(s.path), ".json") {
		return s.storeJSON(outcomes)
	}

	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, Row(s.flow, o))
	}
	return sheet.WriteRows(s.path, Columns(s.flow), rows)
}

func (s *FileSink) storeJSON(outcomes []model.Outcome) error {
	doc := jsonDocument{
		Flow:      string(s.flow),
		WrittenAt: time.Now().UTC(),
		Outcomes:  make([]jsonRecord, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		doc.Outcomes = append(doc.Outcomes, jsonRecord{
			Domain:      o.DomainName,
			Scope:       string(o.ValidationScope),
			StatusCode:  o.StatusCode,
			Result:      string(o.Result),
			Name:        o.Name,
			Token:       o.Token,
			Details:     o.Details,
			ErrorTitle:  o.ErrorTitle,
			ErrorDetail: o.ErrorDetail,
		})
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, encoded, 0644)
}
