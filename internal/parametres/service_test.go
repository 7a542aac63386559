package parametres

import (
	"context"
	"testing"

	"fadem-backend/internal/btp"
	"fadem-backend/internal/immobilier"
	"fadem-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	kv         storage.KV
	immobilier *immobilier.Service
	btp        *btp.Service
	admin      *Service
}

func setup(t *testing.T) *fixture {
	ctx := context.Background()
	kv, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)

	f := &fixture{
		kv:         kv,
		immobilier: immobilier.NewService(ctx, storage.NewAdapter(kv, "immobilier")),
		btp:        btp.NewService(ctx, storage.NewAdapter(kv, "btp")),
	}
	f.admin = NewService(kv, f.immobilier, f.btp)
	return f
}

func TestModules(t *testing.T) {
	f := setup(t)
	assert.Equal(t, []string{"immobilier", "btp"}, f.admin.Modules())
}

func TestExporterImporterModule(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.immobilier.AjouterProprietaire(ctx, immobilier.ProprietaireInput{
		Nom: "Diallo", Telephone: "620112233",
	})
	require.NoError(t, err)

	payload, err := f.admin.ExporterModule(ctx, "immobilier")
	require.NoError(t, err)
	assert.Contains(t, payload, `"module": "immobilier"`)

	// The module tag guards against cross-module payloads.
	err = f.admin.ImporterModule(ctx, "btp", payload)
	require.Error(t, err)

	cible := setup(t)
	require.NoError(t, cible.admin.ImporterModule(ctx, "immobilier", payload))
	assert.Len(t, cible.immobilier.Proprietaires(), 1)

	_, err = f.admin.ExporterModule(ctx, "inconnu")
	require.Error(t, err)
	err = f.admin.ImporterModule(ctx, "inconnu", payload)
	require.Error(t, err)
}

func TestExporterImporterTout(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.immobilier.AjouterProprietaire(ctx, immobilier.ProprietaireInput{
		Nom: "Diallo", Telephone: "620112233",
	})
	require.NoError(t, err)
	_, err = f.btp.AjouterChantier(ctx, btp.ChantierInput{Nom: "Villa", Client: "SCI"})
	require.NoError(t, err)

	payload, err := f.admin.ExporterTout(ctx)
	require.NoError(t, err)

	cible := setup(t)
	require.NoError(t, cible.admin.ImporterTout(ctx, payload))
	assert.Len(t, cible.immobilier.Proprietaires(), 1)
	assert.Len(t, cible.btp.Chantiers(), 1)

	require.Error(t, f.admin.ImporterTout(ctx, "pas du json"))
	require.Error(t, f.admin.ImporterTout(ctx, `{"data":{}}`))
}

func TestRestaurerSauvegardeSansBackup(t *testing.T) {
	f := setup(t)
	err := f.admin.RestaurerSauvegarde(context.Background(), "immobilier")
	require.Error(t, err)

	err = f.admin.RestaurerSauvegarde(context.Background(), "inconnu")
	require.Error(t, err)
}

func TestReinitialiser(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.btp.AjouterChantier(ctx, btp.ChantierInput{Nom: "Villa", Client: "SCI"})
	require.NoError(t, err)
	require.NotEmpty(t, f.btp.Chantiers())

	require.NoError(t, f.admin.Reinitialiser(ctx))
	assert.Empty(t, f.btp.Chantiers())
	assert.Empty(t, f.immobilier.Proprietaires())

	_, ok, err := f.kv.Get(ctx, "fadem_btp")
	require.NoError(t, err)
	assert.False(t, ok)
}
