package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestReadTargets_DomainAndScopeColumns(t *testing.T) {
	path := writeTestCSV(t, "Hostname,Validation Scope\n Example.COM ,domain\nb.com,S_HOST\n")

	report, err := ReadTargets(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}

	if report.DomainGuessed {
		t.Error("Expected the Hostname header to be recognized")
	}
	if report.ScopeDefaulted {
		t.Error("Expected the Validation Scope header to be recognized")
	}
	want := []model.Target{
		{DomainName: "example.com", ValidationScope: model.ScopeDomain},
		{DomainName: "b.com", ValidationScope: model.ScopeSingleHost},
	}
	if len(report.Targets) != len(want) {
		t.Fatalf("Expected %d targets, got %d", len(want), len(report.Targets))
	}
	for i, target := range want {
		if report.Targets[i] != target {
			t.Errorf("Target %d: expected %+v, got %+v", i, target, report.Targets[i])
		}
	}
}

func TestReadTargets_FirstColumnFallback(t *testing.T) {
	path := writeTestCSV(t, "Sites,Owner\na.com,alice\nb.com,bob\n")

	report, err := ReadTargets(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}

	if !report.DomainGuessed {
		t.Error("Expected DomainGuessed for an unrecognized header")
	}
	if report.DomainColumn != "Sites" {
		t.Errorf("Expected first column Sites, got %q", report.DomainColumn)
	}
	if !report.ScopeDefaulted {
		t.Error("Expected ScopeDefaulted with no scope column")
	}
	for _, target := range report.Targets {
		if target.ValidationScope != model.ScopeDomain {
			t.Errorf("Expected default DOMAIN scope, got %q", target.ValidationScope)
		}
	}
}

func TestReadTargets_BlankDomainsSkipped(t *testing.T) {
	path := writeTestCSV(t, "Domain,Scope\na.com,DOMAIN\n  ,DOMAIN\n\nb.com,\n")

	report, err := ReadTargets(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}

	if len(report.Targets) != 2 {
		t.Errorf("Expected 2 targets, got %d", len(report.Targets))
	}
	if report.Skipped == 0 {
		t.Error("Expected skipped rows to be counted")
	}
}

func TestReadTargets_RequireScopeMissing(t *testing.T) {
	path := writeTestCSV(t, "Domain\na.com\n")

	if _, err := ReadTargets(path, ReadOptions{RequireScope: true}); err == nil {
		t.Error("Expected an error when the required scope column is missing")
	}
}

func TestReadTargets_EmptyFile(t *testing.T) {
	path := writeTestCSV(t, "")

	if _, err := ReadTargets(path, ReadOptions{}); err == nil {
		t.Error("Expected an error for an empty file")
	}
}

func TestWriteRows_CSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	headers := []string{"Domain", "Scope"}
	rows := [][]string{{"a.com", "DOMAIN"}, {"b.com", "S_HOST"}}

	if err := WriteRows(path, headers, rows); err != nil {
		t.Fatalf("WriteRows failed: %v", err)
	}

	report, err := ReadTargets(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTargets failed on written file: %v", err)
	}
	if len(report.Targets) != 2 {
		t.Fatalf("Expected 2 targets back, got %d", len(report.Targets))
	}
	if report.Targets[1].ValidationScope != model.ScopeSingleHost {
		t.Errorf("Expected S_HOST, got %q", report.Targets[1].ValidationScope)
	}
}

func TestWriteRows_XLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	headers := []string{"Domain", "Scope"}
	rows := [][]string{{"a.com", "DOMAIN"}, {"b.com", "M_HOST"}}

	if err := WriteRows(path, headers, rows); err != nil {
		t.Fatalf("WriteRows failed: %v", err)
	}

	report, err := ReadTargets(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadTargets failed on written file: %v", err)
	}
	if len(report.Targets) != 2 {
		t.Fatalf("Expected 2 targets back, got %d", len(report.Targets))
	}
	if report.Targets[1].ValidationScope != model.ScopeMultiHost {
		t.Errorf("Expected M_HOST, got %q", report.Targets[1].ValidationScope)
	}
}
