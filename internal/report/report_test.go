package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
	"github.com/JCoe77/akamai-dom-automation/internal/sheet"
)

func sampleOutcomes() []model.Outcome {
	return []model.Outcome{
		{
			DomainName:      "a.com",
			ValidationScope: model.ScopeDomain,
			StatusCode:      "201",
			Result:          model.ResultSuccess,
			Name:            "_dcv.a.com",
			Token:           "tok-1",
		},
		{
			DomainName:      "b.com",
			ValidationScope: model.ScopeSingleHost,
			StatusCode:      "400",
			Result:          model.ResultFailed,
			ErrorTitle:      "Invalid Request",
			ErrorDetail:     "not registrable",
		},
	}
}

func TestFileSink_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	sink := NewFileSink(path, FlowCreate)

	if err := sink.Store(context.Background(), sampleOutcomes()); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	text := string(content)
	for _, want := range []string{"Domain", "Token", "tok-1", "not registrable"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestFileSink_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	sink := NewFileSink(path, FlowValidate)

	if err := sink.Store(context.Background(), sampleOutcomes()); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// Read back through the sheet reader: the Domain header must resolve
	report, err := sheet.ReadTargets(path, sheet.ReadOptions{})
	if err != nil {
		t.Fatalf("Failed to re-read output: %v", err)
	}
	if len(report.Targets) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(report.Targets))
	}
	if report.Targets[1].ValidationScope != model.ScopeSingleHost {
		t.Errorf("Expected S_HOST scope round trip, got %q", report.Targets[1].ValidationScope)
	}
}

func TestFileSink_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	sink := NewFileSink(path, FlowCreate)

	if err := sink.Store(context.Background(), sampleOutcomes()); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var doc jsonDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if doc.Flow != "create" {
		t.Errorf("Expected flow create, got %q", doc.Flow)
	}
	if len(doc.Outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(doc.Outcomes))
	}
	if doc.Outcomes[0].Token != "tok-1" {
		t.Errorf("Expected tok-1, got %q", doc.Outcomes[0].Token)
	}
}

func TestColumnsAndRow_Alignment(t *testing.T) {
	for _, flow := range []Flow{FlowCreate, FlowValidate, FlowDelete} {
		headers := Columns(flow)
		row := Row(flow, sampleOutcomes()[0])
		if len(headers) != len(row) {
			t.Errorf("Flow %s: header count %d does not match row length %d", flow, len(headers), len(row))
		}
	}
}

func TestOutcomeDTO_Mapping(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	o := sampleOutcomes()[0]

	dto := newOutcomeDTO("run-1", "create", 3, o, now)

	if dto.PK != "run-1" {
		t.Errorf("Expected PK run-1, got %q", dto.PK)
	}
	if dto.SK != "000003#a.com#DOMAIN" {
		t.Errorf("Unexpected SK: %q", dto.SK)
	}
	if dto.Token != "tok-1" || dto.Result != "Success" {
		t.Errorf("Unexpected DTO fields: %+v", dto)
	}
	if !dto.RunTime.Equal(now) {
		t.Errorf("Expected run time %v, got %v", now, dto.RunTime)
	}
}
