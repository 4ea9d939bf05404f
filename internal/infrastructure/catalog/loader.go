// Package catalog loads phase catalogs from CSV or YAML files and keeps a
// hot-reloadable snapshot.
package catalog

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"
	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = crerr.New("unsupported catalog format")
	ErrEmptyCatalog      = crerr.New("catalog has no phases")
)

// yamlDocument is the YAML layout:
//
//	phases:
//	  - name: Alpha
//	    lead: [A, B]
//	    side: [C, D]
type yamlDocument struct {
	Phases []yamlPhase `yaml:"phases"`
}

type yamlPhase struct {
	Name string   `yaml:"name"`
	Lead []string `yaml:"lead"`
	Side []string `yaml:"side"`
}

// LoadFile reads catalog records from path, picking the parser by extension.
func LoadFile(path string) ([]phase.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read catalog %s", path)
	}

	var records []phase.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = ParseCSV(bytes.NewReader(raw))
	case ".yaml", ".yml":
		records, err = ParseYAML(raw)
	default:
		return nil, crerr.Wrapf(ErrUnsupportedFormat, "catalog %s", path)
	}
	if err != nil {
		return nil, crerr.Wrapf(err, "parse catalog %s", path)
	}
	return records, nil
}

// Build loads path and returns a non-empty catalog.
func Build(path string) (*phase.Catalog, error) {
	records, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c := phase.NewCatalog(records)
	if c.Len() == 0 {
		return nil, crerr.Wrapf(ErrEmptyCatalog, "catalog %s", path)
	}
	return c, nil
}

// ParseCSV reads rows with a Phase, Role, UnitName header. Header matching
// ignores case and surrounding spaces; "Unit" is accepted for UnitName.
func ParseCSV(r io.Reader) ([]phase.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if crerr.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, crerr.Wrap(err, "read csv header")
	}

	cols := map[string]int{}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if key == "unit" {
			key = "unitname"
		}
		cols[key] = i
	}
	for _, required := range []string{"phase", "role", "unitname"} {
		if _, ok := cols[required]; !ok {
			return nil, crerr.Newf("csv header is missing column %q", required)
		}
	}

	var records []phase.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if crerr.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read csv line %d", line)
		}
		records = append(records, phase.Record{
			Phase: field(row, cols["phase"]),
			Role:  field(row, cols["role"]),
			Unit:  field(row, cols["unitname"]),
		})
	}
	return records, nil
}

func ParseYAML(raw []byte) ([]phase.Record, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, crerr.Wrap(err, "decode yaml")
	}

	var records []phase.Record
	for _, p := range doc.Phases {
		for _, unit := range p.Lead {
			records = append(records, phase.Record{Phase: p.Name, Role: string(phase.RoleLead), Unit: unit})
		}
		for _, unit := range p.Side {
			records = append(records, phase.Record{Phase: p.Name, Role: string(phase.RoleSide), Unit: unit})
		}
	}
	return records, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
