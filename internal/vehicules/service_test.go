package vehicules

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
	return NewService(context.Background(), storage.NewAdapter(kv, "vehicules"))
}

func creerProprietaire(t *testing.T, s *Service) *domain.ProprietaireVehicule {
	p, err := s.AjouterProprietaire(context.Background(), ProprietaireInput{
		Nom: "Camara", Telephone: "621445566",
	})
	require.NoError(t, err)
	return p
}

func creerVehicule(t *testing.T, s *Service, proprietaireID string) *domain.Vehicule {
	v, err := s.AjouterVehicule(context.Background(), VehiculeInput{
		ProprietaireVehiculeID: proprietaireID,
		Marque:                 "Toyota",
		Modele:                 "Hilux",
		PrixProprietaire:       400000,
		PrixFadem:              500000,
		Kilometrage:            82000,
	})
	require.NoError(t, err)
	return v
}

// Full rental lifecycle: a rented vehicle is locked, and closing the rental
// writes the history record on both the fleet log and the vehicle.
func TestCycleDeVieLocation(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	fin := time.Date(2025, 4, 20, 18, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fin }

	p := creerProprietaire(t, s)
	v := creerVehicule(t, s, p.ID)
	assert.Equal(t, 100000.0, v.Commission)
	assert.Equal(t, []string{v.ID}, s.Proprietaires()[0].VehiculesConfies)

	debut := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	c, err := s.CreerContrat(ctx, ContratInput{
		VehiculeID:       v.ID,
		ClientNom:        "Sylla",
		Type:             "location",
		Montant:          150000,
		DateDebut:        debut,
		KilometrageDebut: 82000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ContratVehiculeActif, c.Statut)
	assert.Equal(t, domain.VehiculeLoue, s.Vehicules()[0].Statut)
	assert.Len(t, s.ContratsActifs(), 1)
	assert.Empty(t, s.VehiculesDisponibles())

	// The vehicle is taken: no overlapping contract.
	_, err = s.CreerContrat(ctx, ContratInput{VehiculeID: v.ID, Type: "location"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	// Deletion refused while a contract runs.
	err = s.SupprimerVehicule(ctx, v.ID)
	require.Error(t, err)
	assert.True(t, domain.IsReferential(err))

	c2, err := s.TerminerLocation(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContratVehiculeTermine, c2.Statut)
	require.NotNil(t, c2.DateFin)
	assert.Equal(t, fin, *c2.DateFin)

	hist := s.Historique()
	require.Len(t, hist, 1)
	assert.Equal(t, "Sylla", hist[0].Client)
	assert.Equal(t, 150000.0, hist[0].Montant)
	assert.Equal(t, 82000.0, hist[0].Kilometrage)
	assert.Equal(t, debut, hist[0].DateDebut)

	vs := s.Vehicules()
	assert.Equal(t, domain.VehiculeDisponible, vs[0].Statut)
	require.Len(t, vs[0].HistoriqueLocation, 1)

	require.NoError(t, s.SupprimerVehicule(ctx, v.ID))
	assert.Empty(t, s.Proprietaires()[0].VehiculesConfies)
}

func TestTerminerLocationValidation(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	p := creerProprietaire(t, s)
	v := creerVehicule(t, s, p.ID)

	// A sale contract cannot be "terminated".
	c, err := s.CreerContrat(ctx, ContratInput{VehiculeID: v.ID, Type: "vente", Montant: 500000})
	require.NoError(t, err)
	_, err = s.TerminerLocation(ctx, c.ID)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = s.TerminerLocation(ctx, "absent")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestSupprimerProprietaireAvecVehicules(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	p := creerProprietaire(t, s)
	v := creerVehicule(t, s, p.ID)

	err := s.SupprimerProprietaire(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, domain.IsReferential(err))

	require.NoError(t, s.SupprimerVehicule(ctx, v.ID))
	require.NoError(t, s.SupprimerProprietaire(ctx, p.ID))
}

// Commission follows the price fields through partial updates.
func TestModifierVehiculeRecalculeCommission(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	p := creerProprietaire(t, s)
	v := creerVehicule(t, s, p.ID)

	couleur := "blanche"
	v2, err := s.ModifierVehicule(ctx, v.ID, VehiculeUpdate{Couleur: &couleur})
	require.NoError(t, err)
	assert.Equal(t, 100000.0, v2.Commission)

	prix := 550000.0
	v3, err := s.ModifierVehicule(ctx, v.ID, VehiculeUpdate{PrixFadem: &prix})
	require.NoError(t, err)
	assert.Equal(t, 150000.0, v3.Commission)
}

func TestStatistiques(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	maintenant := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return maintenant }

	p := creerProprietaire(t, s)
	v1 := creerVehicule(t, s, p.ID)
	creerVehicule(t, s, p.ID)

	_, err := s.CreerContrat(ctx, ContratInput{
		VehiculeID: v1.ID, Type: "location", Montant: 200000,
		DateDebut: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	st := s.Statistiques()
	assert.Equal(t, 2, st.VehiculesTotal)
	assert.Equal(t, 1, st.EnLocation)
	assert.Equal(t, 1, st.Disponibles)
	assert.Equal(t, 200000.0, st.RevenusMensuels)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	creerProprietaire(t, s)

	payload, err := s.Export(ctx)
	require.NoError(t, err)

	s2 := setupService(t)
	require.True(t, s2.Import(ctx, payload))
	assert.Len(t, s2.Proprietaires(), 1)
}
