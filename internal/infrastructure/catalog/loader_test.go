package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
)

const sampleCSV = "Phase,Role,UnitName\n" +
	"Alpha,Lead,A\n" +
	"Alpha,Lead,B\n" +
	"Alpha,Side,C\n" +
	",Side,X\n" +
	"Alpha,Side,\n" +
	"Alpha,Healer,Z\n" +
	"Beta,Side,D\n"

func TestParseCSV_SkipsBlankAndUnknownRows(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("expected raw rows to be returned, got %d", len(records))
	}

	c, err := buildFromCSV(t, sampleCSV)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	alpha, ok := c.Lookup("alpha")
	if !ok {
		t.Fatalf("expected Alpha")
	}
	if len(alpha.Lead) != 2 || len(alpha.Side) != 1 {
		t.Fatalf("unexpected pools: %+v", alpha)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 phases, got %d", c.Len())
	}
}

func TestParseCSV_RequiresHeaderColumns(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("Phase,Unit\nAlpha,A\n")); err == nil {
		t.Fatalf("expected missing role column error")
	}

	records, err := ParseCSV(strings.NewReader(" phase , ROLE , unit \nAlpha,Lead,A\n"))
	if err != nil || len(records) != 1 || records[0].Unit != "A" {
		t.Fatalf("expected lenient header match: records=%+v err=%v", records, err)
	}
}

func TestParseYAML(t *testing.T) {
	raw := []byte("phases:\n  - name: Alpha\n    lead: [A, B]\n    side: [C]\n")
	records, err := ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if len(records) != 3 || records[0].Role != "Lead" || records[2].Role != "Side" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLoadFile_RejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.txt")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestBuild_RejectsEmptyCatalog(t *testing.T) {
	if _, err := buildFromCSV(t, "Phase,Role,UnitName\n,Lead,A\n"); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestProvider_ReloadKeepsPreviousOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	p, err := NewProvider(path, logging.NewNop())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if err := os.WriteFile(path, []byte("Phase,Role,UnitName\nGamma,Lead,G\n"), 0o600); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}
	if err := p.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := p.Catalog().Lookup("Gamma"); !ok {
		t.Fatalf("expected reloaded catalog")
	}

	if err := os.WriteFile(path, []byte("Phase,Role,UnitName\n"), 0o600); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}
	if err := p.Reload(); err == nil {
		t.Fatalf("expected reload error for empty catalog")
	}
	if _, ok := p.Catalog().Lookup("Gamma"); !ok {
		t.Fatalf("failed reload must keep the previous catalog")
	}
}

func TestProvider_WatchPicksUpChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	p, err := NewProvider(path, logging.NewNop())
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	ctx := t.Context()
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		_ = os.WriteFile(path, []byte("Phase,Role,UnitName\nDelta,Lead,Q\n"), 0o600)
		time.Sleep(400 * time.Millisecond)
		if _, ok := p.Catalog().Lookup("Delta"); ok {
			return
		}
	}
	t.Fatalf("watcher did not reload the catalog")
}

func buildFromCSV(t *testing.T, content string) (*phase.Catalog, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return Build(path)
}
