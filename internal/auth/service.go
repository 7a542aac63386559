package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/pkg/validation"
	"fadem-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const sessionPrefix = "fadem_session_"

// Session is the record stored in the KV for each issued token.
type Session struct {
	UtilisateurID string    `json:"utilisateurId"`
	Nom           string    `json:"nom"`
	ModulesAcces  []string  `json:"modulesAcces"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// LoginInput is the login request body.
type LoginInput struct {
	Nom        string `json:"nom"`
	MotDePasse string `json:"motDePasse"`
}

// Service manages back-office users and opaque session tokens. User records
// persist through the module adapter; sessions live directly in the KV so
// they survive a restart but disappear on a full reset.
type Service struct {
	mu       sync.Mutex
	store    *storage.Adapter
	sessions storage.KV
	ttl      time.Duration
	now      func() time.Time
	data     domain.UtilisateursData
}

func NewService(ctx context.Context, store *storage.Adapter, sessions storage.KV, ttl time.Duration) *Service {
	s := &Service{
		store:    store,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
		data:     domain.NewUtilisateursData(),
	}
	store.Load(ctx, &s.data)
	return s
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		log.Error().Err(err).Str("module", s.store.Module()).Msg("Écriture stockage échouée")
	}
}

// UtilisateurInput describes a user to create.
type UtilisateurInput struct {
	Nom          string   `json:"nom"`
	Email        string   `json:"email"`
	MotDePasse   string   `json:"motDePasse"`
	ModulesAcces []string `json:"modulesAcces"`
}

// CreerUtilisateur registers a user with a bcrypt-hashed password.
func (s *Service) CreerUtilisateur(ctx context.Context, in UtilisateurInput) (*domain.UtilisateurModule, error) {
	if in.Nom == "" || in.MotDePasse == "" {
		return nil, ErrIdentifiantsRequis
	}
	if !validation.IsValidPassword(in.MotDePasse) {
		return nil, domain.Invalid("Mot de passe trop faible: 8 caractères minimum, avec lettre, chiffre et caractère spécial")
	}
	if in.Email != "" && !validation.IsValidEmail(in.Email) {
		return nil, domain.Invalid("Adresse email invalide")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.MotDePasse), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.data.Utilisateurs {
		if u.Nom == in.Nom {
			return nil, domain.Invalid("Un utilisateur avec ce nom existe déjà")
		}
	}
	u := domain.UtilisateurModule{
		ID:             uuid.NewString(),
		Nom:            in.Nom,
		Email:          in.Email,
		MotDePasseHash: string(hash),
		ModulesAcces:   in.ModulesAcces,
		Statut:         domain.UtilisateurActif,
		DateCreation:   s.now(),
	}
	if u.ModulesAcces == nil {
		u.ModulesAcces = []string{}
	}
	s.data.Utilisateurs = append(s.data.Utilisateurs, u)
	s.persist(ctx)
	return &u, nil
}

// Login verifies the credentials, refuses non-active accounts, stamps the
// last-connection time and mints an opaque session token.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, *domain.UtilisateurModule, error) {
	if in.Nom == "" || in.MotDePasse == "" {
		return "", nil, ErrIdentifiantsRequis
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var u *domain.UtilisateurModule
	for i := range s.data.Utilisateurs {
		if s.data.Utilisateurs[i].Nom == in.Nom {
			u = &s.data.Utilisateurs[i]
			break
		}
	}
	if u == nil {
		return "", nil, ErrUtilisateurInconnu
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.MotDePasseHash), []byte(in.MotDePasse)); err != nil {
		return "", nil, ErrMotDePasseIncorrect
	}
	if u.Statut != domain.UtilisateurActif {
		return "", nil, ErrCompteInactif
	}

	t := s.now()
	u.DerniereConnexion = &t
	s.persist(ctx)

	token := uuid.NewString()
	session := Session{
		UtilisateurID: u.ID,
		Nom:           u.Nom,
		ModulesAcces:  u.ModulesAcces,
		ExpiresAt:     t.Add(s.ttl),
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Set(ctx, sessionPrefix+token, string(raw)); err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// VerifierToken resolves a session token, enforcing expiry.
func (s *Service) VerifierToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNonAuthentifie
	}
	raw, ok, err := s.sessions.Get(ctx, sessionPrefix+token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNonAuthentifie
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, ErrNonAuthentifie
	}
	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, sessionPrefix+token)
		return nil, ErrSessionExpiree
	}
	return &session, nil
}

// Logout discards the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionPrefix+token)
}

// Utilisateurs lists users with their password hashes blanked.
func (s *Service) Utilisateurs() []domain.UtilisateurModule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]domain.UtilisateurModule(nil), s.data.Utilisateurs...)
	for i := range out {
		out[i].MotDePasseHash = ""
	}
	return out
}

func (s *Service) Module() string { return s.store.Module() }

func (s *Service) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Export(s.data)
}

func (s *Service) Import(ctx context.Context, payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.NewUtilisateursData()
	if !s.store.Import(payload, &next) {
		return false
	}
	s.data = next
	s.persist(ctx)
	return true
}

// RestaurerSauvegarde replaces the dataset with the last backup copy.
func (s *Service) RestaurerSauvegarde(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.NewUtilisateursData()
	if !s.store.RestoreBackup(ctx, &next) {
		return false
	}
	s.data = next
	s.persist(ctx)
	return true
}

func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := domain.NewUtilisateursData()
	s.store.Load(ctx, &next)
	s.data = next
}
