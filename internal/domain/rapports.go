package domain

import "time"

// ActiviteModule is one module's revenue activity within a daily report.
type ActiviteModule struct {
	Montant      float64 `json:"montant"`
	Transactions int     `json:"transactions"`
}

// RapportJournalier aggregates one calendar day's accounting transactions.
// There is at most one report per day; regenerating replaces it.
type RapportJournalier struct {
	ID                 string                    `json:"id"`
	Date               time.Time                 `json:"date"`
	Recettes           float64                   `json:"recettes"`
	Depenses           float64                   `json:"depenses"`
	BeneficeNet        float64                   `json:"beneficeNet"`
	TransactionsCount  int                       `json:"transactionsCount"`
	ActivitesParModule map[string]ActiviteModule `json:"activitesParModule"`
	Remarques          string                    `json:"remarques,omitempty"`
	GenerePar          string                    `json:"generePar,omitempty"`
	DateGeneration     time.Time                 `json:"dateGeneration"`
}

// Custom report metric names.
const (
	MetriqueRevenus      = "revenus"
	MetriqueDepenses     = "depenses"
	MetriqueBenefices    = "benefices"
	MetriqueTransactions = "transactions"
	MetriqueEvolution    = "evolution"
)

// RapportPersonnalise is a custom report over a date range, module filter
// and requested metrics.
type RapportPersonnalise struct {
	ID             string             `json:"id"`
	Nom            string             `json:"nom"`
	Description    string             `json:"description,omitempty"`
	DateDebut      time.Time          `json:"dateDebut"`
	DateFin        time.Time          `json:"dateFin"`
	Modules        []string           `json:"modules"`
	Metriques      []string           `json:"metriques"`
	Donnees        map[string]float64 `json:"donnees"`
	DateGeneration time.Time          `json:"dateGeneration"`
	GenerePar      string             `json:"generePar,omitempty"`
	Format         string             `json:"format"` // pdf | excel | json
}

// RapportsData is the reporting module's full persisted record set.
type RapportsData struct {
	RapportsJournaliers   []RapportJournalier   `json:"rapportsJournaliers"`
	RapportsPersonnalises []RapportPersonnalise `json:"rapportsPersonnalises"`
}

// NewRapportsData returns the initial (empty) record set.
func NewRapportsData() RapportsData {
	return RapportsData{
		RapportsJournaliers:   []RapportJournalier{},
		RapportsPersonnalises: []RapportPersonnalise{},
	}
}
