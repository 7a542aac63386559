package comptabilite

import (
	"context"
	"testing"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	kv, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	return NewService(context.Background(), storage.NewAdapter(kv, "comptabilite"))
}

func creerCompte(t *testing.T, s *Service, solde float64) *domain.Compte {
	cp, err := s.AjouterCompte(context.Background(), CompteInput{
		Nom: "Caisse principale", Type: "caisse", SoldeInitial: solde,
	})
	require.NoError(t, err)
	return cp
}

func TestAjouterCompteValeursParDefaut(t *testing.T) {
	s := setupService(t)
	cp := creerCompte(t, s, 500000)
	assert.Equal(t, 500000.0, cp.SoldeActuel)
	assert.Equal(t, "GNF", cp.Devise)
	assert.Equal(t, domain.CompteActif, cp.Statut)

	_, err := s.AjouterCompte(context.Background(), CompteInput{})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCategoriesParDefaut(t *testing.T) {
	s := setupService(t)
	assert.Len(t, s.Categories(), len(domain.CategoriesDefaut()))
}

// A posting, its edit and its removal each keep soldeActuel equal to
// soldeInitial plus the signed sum of the account's transactions.
func TestSoldeSuitLesTransactions(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	cp := creerCompte(t, s, 500000)

	tx, err := s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionRecette, Montant: 200000, CompteID: cp.ID, Module: "immobilier",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionValidee, tx.Statut)
	assert.False(t, tx.Date.IsZero())
	assert.Equal(t, 700000.0, s.Comptes()[0].SoldeActuel)

	// Flip the entry to an expense of a different amount: the old effect is
	// reversed before the new one lands.
	depense := domain.TransactionDepense
	montant := 50000.0
	_, err = s.ModifierTransaction(ctx, tx.ID, TransactionUpdate{Type: &depense, Montant: &montant})
	require.NoError(t, err)
	assert.Equal(t, 450000.0, s.Comptes()[0].SoldeActuel)

	require.NoError(t, s.SupprimerTransaction(ctx, tx.ID))
	assert.Equal(t, 500000.0, s.Comptes()[0].SoldeActuel)
	assert.Empty(t, s.Transactions())
}

func TestAjouterTransactionValidation(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	cp := creerCompte(t, s, 0)

	_, err := s.AjouterTransaction(ctx, TransactionInput{Type: "virement", CompteID: cp.ID})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = s.AjouterTransaction(ctx, TransactionInput{Type: domain.TransactionRecette, CompteID: "absent"})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestSupprimerCompteAvecTransactions(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	cp := creerCompte(t, s, 0)

	tx, err := s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionRecette, Montant: 1000, CompteID: cp.ID,
	})
	require.NoError(t, err)

	err = s.SupprimerCompte(ctx, cp.ID)
	require.Error(t, err)
	assert.True(t, domain.IsReferential(err))

	require.NoError(t, s.SupprimerTransaction(ctx, tx.ID))
	require.NoError(t, s.SupprimerCompte(ctx, cp.ID))
}

// Pending entries are excluded from every dashboard figure.
func TestStatistiquesTransactionsValidees(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	maintenant := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return maintenant }

	cp := creerCompte(t, s, 100000)

	_, err := s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionRecette, Montant: 80000, CompteID: cp.ID, Date: maintenant,
	})
	require.NoError(t, err)
	_, err = s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionDepense, Montant: 20000, CompteID: cp.ID,
		Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionRecette, Montant: 999999, CompteID: cp.ID,
		Date: maintenant, Statut: domain.TransactionEnAttente,
	})
	require.NoError(t, err)

	st := s.Statistiques()
	assert.Equal(t, 80000.0, st.RevenusJour)
	assert.Zero(t, st.DepensesJour)
	assert.Equal(t, 80000.0, st.BeneficesNet)
	assert.Equal(t, 80000.0, st.RevenusMois)
	assert.Equal(t, 20000.0, st.DepensesMois)
	assert.Equal(t, 75.0, st.MargeNette)
	assert.Equal(t, 1, st.TransactionsJour)
	assert.Equal(t, 2, st.TransactionsMois)
	assert.Equal(t, 1, st.NombreComptes)
	// The pending entry still moved the balance.
	assert.Equal(t, 100000.0+80000-20000+999999, st.SoldeTotal)
}

func TestStatistiquesSansRevenus(t *testing.T) {
	s := setupService(t)
	assert.Zero(t, s.Statistiques().MargeNette)
}

func TestBilansComptes(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	maintenant := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return maintenant }

	cp := creerCompte(t, s, 300000)
	_, err := s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionRecette, Montant: 50000, CompteID: cp.ID, Date: maintenant,
	})
	require.NoError(t, err)
	// Previous month: moves the balance but stays out of the monthly sums.
	_, err = s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionDepense, Montant: 10000, CompteID: cp.ID,
		Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	bilans := s.BilansComptes()
	require.Len(t, bilans, 1)
	b := bilans[0]
	assert.Equal(t, 300000.0, b.SoldeDebut)
	assert.Equal(t, 340000.0, b.SoldeFin)
	assert.Equal(t, 50000.0, b.TotalRecettes)
	assert.Zero(t, b.TotalDepenses)
	assert.Equal(t, 1, b.NombreTransactions)
}

func TestRevenusParModule(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	maintenant := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return maintenant }

	cp := creerCompte(t, s, 0)
	_, err := s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionRecette, Montant: 75000, CompteID: cp.ID, Module: "immobilier", Date: maintenant,
	})
	require.NoError(t, err)
	_, err = s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionRecette, Montant: 25000, CompteID: cp.ID, Module: "vehicules", Date: maintenant,
	})
	require.NoError(t, err)

	parModule := map[string]RevenuModule{}
	for _, rm := range s.RevenusParModule() {
		parModule[rm.Module] = rm
	}
	require.Len(t, parModule, 2)
	assert.Equal(t, 75.0, parModule["immobilier"].Pourcentage)
	assert.Equal(t, 25000.0, parModule["vehicules"].Montant)
	assert.Equal(t, 25.0, parModule["vehicules"].Pourcentage)
}

func TestDepensesParCategorie(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	maintenant := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return maintenant }

	cp := creerCompte(t, s, 0)
	cat, err := s.AjouterCategorie(ctx, CategorieInput{Nom: "Carburant", Type: "depense"})
	require.NoError(t, err)

	_, err = s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionDepense, Montant: 40000, CompteID: cp.ID, CategorieID: cat.ID, Date: maintenant,
	})
	require.NoError(t, err)
	_, err = s.AjouterTransaction(ctx, TransactionInput{
		Type: domain.TransactionDepense, Montant: 15000, CompteID: cp.ID, CategorieID: "inconnue", Date: maintenant,
	})
	require.NoError(t, err)

	parCategorie := map[string]float64{}
	for _, dc := range s.DepensesParCategorie() {
		parCategorie[dc.Categorie] = dc.Montant
	}
	assert.Equal(t, 40000.0, parCategorie["Carburant"])
	assert.Equal(t, 15000.0, parCategorie["Non classé"])
}
