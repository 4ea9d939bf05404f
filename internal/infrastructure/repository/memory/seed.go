package memory

import "github.com/MachuPishtuu/gq-roulette-bot/internal/domain/phase"

// SeedCatalogRecords is the built-in catalog used when no catalog file is
// configured in dev.
func SeedCatalogRecords() []phase.Record {
	return []phase.Record{
		{Phase: "Alpha", Role: "Lead", Unit: "Astra"},
		{Phase: "Alpha", Role: "Lead", Unit: "Brann"},
		{Phase: "Alpha", Role: "Side", Unit: "Cyra"},
		{Phase: "Alpha", Role: "Side", Unit: "Dorn"},
		{Phase: "Alpha", Role: "Side", Unit: "Elka"},
		{Phase: "Beta", Role: "Lead", Unit: "Fenn"},
		{Phase: "Beta", Role: "Lead", Unit: "Gale"},
		{Phase: "Beta", Role: "Lead", Unit: "Hollis"},
		{Phase: "Beta", Role: "Side", Unit: "Ivo"},
		{Phase: "Beta", Role: "Side", Unit: "Juno"},
		{Phase: "Gamma", Role: "Lead", Unit: "Kestrel"},
		{Phase: "Gamma", Role: "Lead", Unit: "Lumen"},
		{Phase: "Gamma", Role: "Side", Unit: "Mira"},
		{Phase: "Gamma", Role: "Side", Unit: "Nox"},
		{Phase: "Gamma", Role: "Side", Unit: "Orin"},
	}
}
