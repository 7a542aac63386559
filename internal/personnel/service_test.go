package personnel

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
	return NewService(context.Background(), storage.NewAdapter(kv, "personnel"))
}

func creerEmploye(t *testing.T, s *Service, salaire float64) *domain.Employe {
	e, err := s.AjouterEmploye(context.Background(), EmployeInput{
		Nom: "Touré", Prenom: "Fatou", Poste: "Comptable",
		Departement: "Finance", SalaireMensuel: salaire,
	})
	require.NoError(t, err)
	return e
}

func TestAjouterEmploye(t *testing.T) {
	s := setupService(t)
	e := creerEmploye(t, s, 2500000)
	assert.Equal(t, domain.EmployeActif, e.Statut)
	assert.False(t, e.DateEmbauche.IsZero())

	_, err := s.AjouterEmploye(context.Background(), EmployeInput{Nom: "Sans poste"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestEnregistrerSalaireNet(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	e := creerEmploye(t, s, 2500000)

	sal, err := s.EnregistrerSalaire(ctx, SalaireInput{
		EmployeID: e.ID, Mois: 4, Annee: 2025,
		SalaireBase: 2500000, Primes: 200000, Avances: 300000, Retenues: 100000,
	})
	require.NoError(t, err)
	assert.Equal(t, 2300000.0, sal.SalaireNet)
	assert.Equal(t, "paye", sal.Statut)
	assert.False(t, sal.DatePaiement.IsZero())

	_, err = s.EnregistrerSalaire(ctx, SalaireInput{EmployeID: "absent"})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

// The due salary is the monthly base minus every advance already recorded.
func TestCalculerSalaire(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	e := creerEmploye(t, s, 2000000)

	assert.Equal(t, 2000000.0, s.CalculerSalaire(e.ID))

	_, err := s.EnregistrerSalaire(ctx, SalaireInput{EmployeID: e.ID, Avances: 300000})
	require.NoError(t, err)
	_, err = s.EnregistrerSalaire(ctx, SalaireInput{EmployeID: e.ID, Avances: 200000})
	require.NoError(t, err)

	assert.Equal(t, 1500000.0, s.CalculerSalaire(e.ID))
	assert.Zero(t, s.CalculerSalaire("absent"))
}

func TestTraiterConge(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	e := creerEmploye(t, s, 1000000)

	cg, err := s.DemanderConge(ctx, CongeInput{
		EmployeID: e.ID, Type: "annuel",
		DateDebut: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CongeDemande, cg.Statut)

	_, err = s.TraiterConge(ctx, cg.ID, "peut-etre", "DRH")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	cg2, err := s.TraiterConge(ctx, cg.ID, domain.CongeApprouve, "DRH")
	require.NoError(t, err)
	assert.Equal(t, domain.CongeApprouve, cg2.Statut)
	assert.Equal(t, "DRH", cg2.Approbateur)
	require.NotNil(t, cg2.DateApprobation)

	_, err = s.TraiterConge(ctx, "absent", domain.CongeRefuse, "DRH")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestStatistiques(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	maintenant := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return maintenant }

	a := creerEmploye(t, s, 2000000)
	b := creerEmploye(t, s, 1500000)
	suspendu := domain.EmployeSuspendu
	_, err := s.ModifierEmploye(ctx, b.ID, EmployeUpdate{Statut: &suspendu})
	require.NoError(t, err)

	// Approved leave spanning today.
	cg, err := s.DemanderConge(ctx, CongeInput{
		EmployeID: a.ID,
		DateDebut: time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
		DateFin:   time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = s.TraiterConge(ctx, cg.ID, domain.CongeApprouve, "DRH")
	require.NoError(t, err)

	_, err = s.EnregistrerSalaire(ctx, SalaireInput{EmployeID: a.ID, Avances: 250000})
	require.NoError(t, err)

	st := s.Statistiques()
	assert.Equal(t, 1, st.EmployesActifs)
	assert.Equal(t, 1, st.EnConge)
	assert.Equal(t, 2000000.0, st.MasseSalariale)
	assert.Equal(t, 250000.0, st.AvancesMois)
}

func TestEmployesParDepartement(t *testing.T) {
	s := setupService(t)
	creerEmploye(t, s, 1)
	creerEmploye(t, s, 1)
	_, err := s.AjouterEmploye(context.Background(), EmployeInput{
		Nom: "Kaba", Poste: "Chauffeur", Departement: "Logistique",
	})
	require.NoError(t, err)

	parDep := s.EmployesParDepartement()
	assert.Equal(t, 2, parDep["Finance"])
	assert.Equal(t, 1, parDep["Logistique"])
}

func TestSupprimerEmploye(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	e := creerEmploye(t, s, 1)

	require.NoError(t, s.SupprimerEmploye(ctx, e.ID))
	assert.Empty(t, s.Employes())

	err := s.SupprimerEmploye(ctx, e.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
