package rapports

import (
	"context"
	"testing"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// journalFixe serves a fixed transaction log.
type journalFixe struct {
	transactions []domain.TransactionComptable
}

func (j *journalFixe) Transactions() []domain.TransactionComptable {
	return j.transactions
}

func setupService(t *testing.T, journal JournalComptable) *Service {
	kv, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	return NewService(context.Background(), storage.NewAdapter(kv, "rapports"), journal)
}

func transaction(typ string, montant float64, module string, date time.Time, statut string) domain.TransactionComptable {
	return domain.TransactionComptable{
		ID: module + date.Format("20060102"), Type: typ, Montant: montant,
		Module: module, Date: date, Statut: statut,
	}
}

func TestGenererRapportJournalier(t *testing.T) {
	ctx := context.Background()
	jour := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	journal := &journalFixe{transactions: []domain.TransactionComptable{
		transaction(domain.TransactionRecette, 100000, "immobilier", jour, domain.TransactionValidee),
		transaction(domain.TransactionRecette, 50000, "vehicules", jour, domain.TransactionEnAttente),
		transaction(domain.TransactionDepense, 30000, "btp", jour, domain.TransactionValidee),
		transaction(domain.TransactionRecette, 999999, "immobilier", jour.AddDate(0, 0, -1), domain.TransactionValidee),
	}}
	s := setupService(t, journal)

	r := s.GenererRapportJournalier(ctx, jour)
	assert.Equal(t, "RAPJ-1749513600000", r.ID)
	// Every status counts toward the day's totals.
	assert.Equal(t, 3, r.TransactionsCount)
	assert.Equal(t, 150000.0, r.Recettes)
	assert.Equal(t, 30000.0, r.Depenses)
	assert.Equal(t, 120000.0, r.BeneficeNet)

	// Expenses are excluded from the module breakdown.
	require.Len(t, r.ActivitesParModule, 2)
	assert.Equal(t, 100000.0, r.ActivitesParModule["immobilier"].Montant)
	assert.Equal(t, 1, r.ActivitesParModule["vehicules"].Transactions)

	// A second run for the same day replaces the stored report.
	s.GenererRapportJournalier(ctx, jour)
	assert.Len(t, s.RapportsJournaliers(), 1)
}

func TestGenererRapportQuotidien(t *testing.T) {
	ctx := context.Background()
	s := setupService(t, &journalFixe{})
	s.now = func() time.Time { return time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC) }

	r := s.GenererRapportQuotidien(ctx)
	require.NotNil(t, r)
	assert.True(t, domain.MemeJour(r.Date, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))

	// Yesterday's report already exists: nothing to do.
	assert.Nil(t, s.GenererRapportQuotidien(ctx))
}

func TestCreerRapportPersonnalise(t *testing.T) {
	ctx := context.Background()
	debut := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	journal := &journalFixe{transactions: []domain.TransactionComptable{
		transaction(domain.TransactionRecette, 120000, "immobilier", debut.AddDate(0, 0, 5), domain.TransactionValidee),
		transaction(domain.TransactionDepense, 20000, "btp", debut.AddDate(0, 0, 10), domain.TransactionValidee),
		// Prior window, for the evolution metric.
		transaction(domain.TransactionRecette, 100000, "immobilier", debut.AddDate(0, 0, -10), domain.TransactionValidee),
	}}
	s := setupService(t, journal)

	r, err := s.CreerRapportPersonnalise(ctx, RapportInput{
		Nom: "Bilan juin", DateDebut: debut, DateFin: fin,
		Metriques: []string{
			domain.MetriqueRevenus, domain.MetriqueDepenses, domain.MetriqueBenefices,
			domain.MetriqueTransactions, domain.MetriqueEvolution,
		},
	})
	require.NoError(t, err)
	assert.Contains(t, r.ID, "RAPP-")
	assert.Equal(t, 120000.0, r.Donnees["revenus"])
	assert.Equal(t, 20000.0, r.Donnees["depenses"])
	assert.Equal(t, 100000.0, r.Donnees["benefices"])
	assert.Equal(t, 2.0, r.Donnees["nombreTransactions"])
	assert.Equal(t, 20.0, r.Donnees["evolution"])
}

func TestCreerRapportPersonnaliseValidation(t *testing.T) {
	ctx := context.Background()
	s := setupService(t, &journalFixe{})

	_, err := s.CreerRapportPersonnalise(ctx, RapportInput{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = s.CreerRapportPersonnalise(ctx, RapportInput{
		Nom:       "Inversé",
		DateDebut: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestEvolutionSansRevenusPrecedents(t *testing.T) {
	ctx := context.Background()
	debut := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	journal := &journalFixe{transactions: []domain.TransactionComptable{
		transaction(domain.TransactionRecette, 50000, "btp", debut.AddDate(0, 0, 2), domain.TransactionValidee),
	}}
	s := setupService(t, journal)

	r, err := s.CreerRapportPersonnalise(ctx, RapportInput{
		Nom: "Premier mois", DateDebut: debut, DateFin: debut.AddDate(0, 1, 0),
		Metriques: []string{domain.MetriqueEvolution},
	})
	require.NoError(t, err)
	assert.Zero(t, r.Donnees["evolution"])
}

func TestFiltrageParModules(t *testing.T) {
	ctx := context.Background()
	debut := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	journal := &journalFixe{transactions: []domain.TransactionComptable{
		transaction(domain.TransactionRecette, 70000, "immobilier", debut, domain.TransactionValidee),
		transaction(domain.TransactionRecette, 30000, "vehicules", debut, domain.TransactionValidee),
	}}
	s := setupService(t, journal)

	r, err := s.CreerRapportPersonnalise(ctx, RapportInput{
		Nom: "Immo seul", DateDebut: debut, DateFin: debut.AddDate(0, 0, 7),
		Modules:   []string{"immobilier"},
		Metriques: []string{domain.MetriqueRevenus},
	})
	require.NoError(t, err)
	assert.Equal(t, 70000.0, r.Donnees["revenus"])
}

func TestRapportsRecentsEtStatistiques(t *testing.T) {
	ctx := context.Background()
	s := setupService(t, &journalFixe{})
	base := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	horloge := base
	s.now = func() time.Time { return horloge }

	s.GenererRapportJournalier(ctx, base.AddDate(0, 0, -1))
	horloge = base.Add(time.Hour)
	_, err := s.CreerRapportPersonnalise(ctx, RapportInput{
		Nom: "Semaine", DateDebut: base.AddDate(0, 0, -7), DateFin: base,
	})
	require.NoError(t, err)

	recents := s.RapportsRecents(0)
	require.Len(t, recents, 2)
	assert.Equal(t, "personnalise", recents[0].Type)
	assert.Equal(t, "journalier", recents[1].Type)

	assert.Len(t, s.RapportsRecents(1), 1)

	st := s.Statistiques()
	assert.Equal(t, 2, st.RapportsGeneres)
	require.NotNil(t, st.DernierRapport)
	assert.Equal(t, base, *st.DernierRapport)
}
