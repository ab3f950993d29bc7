package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/JCoe77/akamai-dom-automation/internal/dvapi"
	"github.com/JCoe77/akamai-dom-automation/internal/sheet"
)

func TestWriteListing_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.json")
	domains := []dvapi.ListedDomain{
		{DomainName: "a.com", ValidationScope: "DOMAIN", DomainStatus: "VALIDATED"},
		{DomainName: "b.com", ValidationScope: "S_HOST", DomainStatus: "REQUEST_ACCEPTED"},
	}

	if err := writeListing(path, domains); err != nil {
		t.Fatalf("writeListing failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var got []dvapi.ListedDomain
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Expected valid JSON, got error: %v", err)
	}
	if len(got) != 2 || got[0] != domains[0] || got[1] != domains[1] {
		t.Errorf("Expected %+v, got %+v", domains, got)
	}
}

func TestWriteListing_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.csv")
	domains := []dvapi.ListedDomain{
		{DomainName: "a.com", ValidationScope: "DOMAIN", DomainStatus: "VALIDATED"},
	}

	if err := writeListing(path, domains); err != nil {
		t.Fatalf("writeListing failed: %v", err)
	}

	report, err := sheet.ReadTargets(path, sheet.ReadOptions{})
	if err != nil {
		t.Fatalf("Failed to read output back: %v", err)
	}
	if len(report.Targets) != 1 || report.Targets[0].DomainName != "a.com" {
		t.Errorf("Expected one a.com row, got %+v", report.Targets)
	}
}
