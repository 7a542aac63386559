package auth

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
	return NewService(context.Background(), storage.NewAdapter(kv, "utilisateurs"), kv, 12*time.Hour)
}

func creerUtilisateur(t *testing.T, s *Service) *domain.UtilisateurModule {
	u, err := s.CreerUtilisateur(context.Background(), UtilisateurInput{
		Nom: "admin", MotDePasse: "S3cret!pass", ModulesAcces: []string{"immobilier"},
	})
	require.NoError(t, err)
	return u
}

func TestCreerUtilisateur(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)

	u := creerUtilisateur(t, s)
	assert.Equal(t, domain.UtilisateurActif, u.Statut)
	assert.NotEmpty(t, u.MotDePasseHash)
	assert.NotEqual(t, "S3cret!pass", u.MotDePasseHash)

	_, err := s.CreerUtilisateur(ctx, UtilisateurInput{Nom: "x"})
	assert.ErrorIs(t, err, ErrIdentifiantsRequis)

	// Too weak: no digit, no special character.
	_, err = s.CreerUtilisateur(ctx, UtilisateurInput{Nom: "y", MotDePasse: "motdepasse"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = s.CreerUtilisateur(ctx, UtilisateurInput{Nom: "z", MotDePasse: "S3cret!pass", Email: "pas-un-email"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = s.CreerUtilisateur(ctx, UtilisateurInput{Nom: "admin", MotDePasse: "S3cret!pass"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestLoginEtVerifierToken(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	u := creerUtilisateur(t, s)

	token, connecte, err := s.Login(ctx, LoginInput{Nom: "admin", MotDePasse: "S3cret!pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, connecte.ID)
	require.NotNil(t, connecte.DerniereConnexion)

	session, err := s.VerifierToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, session.UtilisateurID)
	assert.Equal(t, []string{"immobilier"}, session.ModulesAcces)
}

func TestLoginRefus(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	creerUtilisateur(t, s)

	_, _, err := s.Login(ctx, LoginInput{Nom: "inconnu", MotDePasse: "S3cret!pass"})
	assert.ErrorIs(t, err, ErrUtilisateurInconnu)

	_, _, err = s.Login(ctx, LoginInput{Nom: "admin", MotDePasse: "mauvais"})
	assert.ErrorIs(t, err, ErrMotDePasseIncorrect)

	_, _, err = s.Login(ctx, LoginInput{Nom: "admin"})
	assert.ErrorIs(t, err, ErrIdentifiantsRequis)
}

func TestLoginCompteInactif(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	u := creerUtilisateur(t, s)
	for i := range s.data.Utilisateurs {
		if s.data.Utilisateurs[i].ID == u.ID {
			s.data.Utilisateurs[i].Statut = domain.UtilisateurSuspendu
		}
	}

	_, _, err := s.Login(ctx, LoginInput{Nom: "admin", MotDePasse: "S3cret!pass"})
	assert.ErrorIs(t, err, ErrCompteInactif)
}

// An expired token is refused and its session record dropped.
func TestVerifierTokenExpire(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	creerUtilisateur(t, s)

	token, _, err := s.Login(ctx, LoginInput{Nom: "admin", MotDePasse: "S3cret!pass"})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(13 * time.Hour) }
	_, err = s.VerifierToken(ctx, token)
	assert.ErrorIs(t, err, ErrSessionExpiree)

	// The record is gone: a retry is plain unauthenticated.
	s.now = time.Now
	_, err = s.VerifierToken(ctx, token)
	assert.ErrorIs(t, err, ErrNonAuthentifie)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := setupService(t)
	creerUtilisateur(t, s)

	token, _, err := s.Login(ctx, LoginInput{Nom: "admin", MotDePasse: "S3cret!pass"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx, token))

	_, err = s.VerifierToken(ctx, token)
	assert.ErrorIs(t, err, ErrNonAuthentifie)

	require.NoError(t, s.Logout(ctx, ""))
}

func TestUtilisateursMasqueLesHash(t *testing.T) {
	s := setupService(t)
	creerUtilisateur(t, s)

	liste := s.Utilisateurs()
	require.Len(t, liste, 1)
	assert.Empty(t, liste[0].MotDePasseHash)
	// The stored record keeps its hash.
	assert.NotEmpty(t, s.data.Utilisateurs[0].MotDePasseHash)
}
