package phase

import (
	"sort"
	"strings"
)

// Role is the slot family a unit may fill.
type Role string

const (
	RoleLead Role = "Lead"
	RoleSide Role = "Side"
)

// ParseRole accepts Lead and Side in any case. Anything else is unknown.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "lead":
		return RoleLead, true
	case "side":
		return RoleSide, true
	default:
		return "", false
	}
}

// Phase is a named pool configuration.
type Phase struct {
	Name string
	Lead []string
	Side []string
}

// LeadPool is the candidate pool for the lead slot.
func (p Phase) LeadPool() []string {
	return append([]string(nil), p.Lead...)
}

// SidePool is Side ∪ Lead: sides may take leads, leads never take sides.
func (p Phase) SidePool() []string {
	out := make([]string, 0, len(p.Side)+len(p.Lead))
	seen := make(map[string]struct{}, len(p.Side)+len(p.Lead))
	for _, pool := range [][]string{p.Side, p.Lead} {
		for _, unit := range pool {
			if _, ok := seen[unit]; ok {
				continue
			}
			seen[unit] = struct{}{}
			out = append(out, unit)
		}
	}
	return out
}

// Record is one catalog row.
type Record struct {
	Phase string
	Role  string
	Unit  string
}

// Catalog is an immutable, case-insensitive phase lookup.
type Catalog struct {
	phases map[string]Phase
	names  []string
}

// Key normalizes a phase name for lookups and storage keys.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewCatalog builds a catalog from rows. Rows with a blank phase or unit are
// skipped, unknown roles are ignored, and duplicate units collapse. The first
// spelling of a phase name wins.
func NewCatalog(records []Record) *Catalog {
	c := &Catalog{phases: make(map[string]Phase)}
	seen := make(map[string]map[Role]map[string]struct{})

	for _, rec := range records {
		name := strings.TrimSpace(rec.Phase)
		unit := strings.TrimSpace(rec.Unit)
		if name == "" || unit == "" {
			continue
		}
		role, ok := ParseRole(rec.Role)
		if !ok {
			continue
		}

		key := Key(name)
		p, exists := c.phases[key]
		if !exists {
			p = Phase{Name: name}
			seen[key] = map[Role]map[string]struct{}{RoleLead: {}, RoleSide: {}}
			c.names = append(c.names, name)
		}
		if _, dup := seen[key][role][unit]; dup {
			continue
		}
		seen[key][role][unit] = struct{}{}

		switch role {
		case RoleLead:
			p.Lead = append(p.Lead, unit)
		case RoleSide:
			p.Side = append(p.Side, unit)
		}
		c.phases[key] = p
	}

	sort.Slice(c.names, func(i, j int) bool {
		return Key(c.names[i]) < Key(c.names[j])
	})
	return c
}

func (c *Catalog) Lookup(name string) (Phase, bool) {
	if c == nil {
		return Phase{}, false
	}
	p, ok := c.phases[Key(name)]
	if !ok {
		return Phase{}, false
	}
	return Phase{
		Name: p.Name,
		Lead: append([]string(nil), p.Lead...),
		Side: append([]string(nil), p.Side...),
	}, true
}

// Names lists phase names sorted case-insensitively.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.phases)
}
