package btp

import (
	"context"
	"math"
	"sync"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/pkg/patch"
	"fadem-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service owns the construction record set: worksites, materials, expenses.
type Service struct {
	mu    sync.Mutex
	store *storage.Adapter
	now   func() time.Time
	data  domain.BTPData
}

func NewService(ctx context.Context, store *storage.Adapter) *Service {
	s := &Service{store: store, now: time.Now, data: domain.NewBTPData()}
	store.Load(ctx, &s.data)
	return s
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		log.Error().Err(err).Str("module", s.store.Module()).Msg("Écriture stockage échouée")
	}
}

// --- Chantiers ---

type ChantierInput struct {
	Nom           string    `json:"nom"`
	Client        string    `json:"client"`
	Adresse       string    `json:"adresse"`
	TypeChantier  string    `json:"typeChantier"`
	DateDebut     time.Time `json:"dateDebut"`
	DatePrevue    time.Time `json:"datePrevue"`
	BudgetInitial float64   `json:"budgetInitial"`
	Responsable   string    `json:"responsable"`
	Description   string    `json:"description"`
}

func (s *Service) AjouterChantier(ctx context.Context, in ChantierInput) (*domain.Chantier, error) {
	if in.Nom == "" || in.Client == "" {
		return nil, domain.Invalid("Nom et client sont requis")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := domain.Chantier{
		ID:             uuid.NewString(),
		Nom:            in.Nom,
		Client:         in.Client,
		Adresse:        in.Adresse,
		TypeChantier:   in.TypeChantier,
		DateDebut:      in.DateDebut,
		DatePrevue:     in.DatePrevue,
		BudgetInitial:  in.BudgetInitial,
		BudgetActuel:   in.BudgetInitial,
		Avancement:     0,
		Statut:         domain.ChantierPlanifie,
		Responsable:    in.Responsable,
		EquipeAssignee: []string{},
		Description:    in.Description,
	}
	s.data.Chantiers = append(s.data.Chantiers, ch)
	s.persist(ctx)
	return &ch, nil
}

type ChantierUpdate struct {
	Nom          *string    `json:"nom"`
	Client       *string    `json:"client"`
	Adresse      *string    `json:"adresse"`
	DatePrevue   *time.Time `json:"datePrevue"`
	DateFin      *time.Time `json:"dateFin"`
	BudgetActuel *float64   `json:"budgetActuel"`
	Avancement   *float64   `json:"avancement"`
	Statut       *string    `json:"statut"`
	Responsable  *string    `json:"responsable"`
	Description  *string    `json:"description"`
}

func (s *Service) ModifierChantier(ctx context.Context, id string, up ChantierUpdate) (*domain.Chantier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexChantier(id)
	if i < 0 {
		return nil, domain.NotFound("Chantier", id)
	}
	ch := &s.data.Chantiers[i]
	patch.String(&ch.Nom, up.Nom)
	patch.String(&ch.Client, up.Client)
	patch.String(&ch.Adresse, up.Adresse)
	patch.Time(&ch.DatePrevue, up.DatePrevue)
	if up.DateFin != nil {
		ch.DateFin = up.DateFin
	}
	patch.Float(&ch.BudgetActuel, up.BudgetActuel)
	patch.Float(&ch.Avancement, up.Avancement)
	patch.String(&ch.Statut, up.Statut)
	patch.String(&ch.Responsable, up.Responsable)
	patch.String(&ch.Description, up.Description)
	s.persist(ctx)
	return ch, nil
}

// SupprimerChantier refuses while the worksite is running or still has
// expenses booked against it.
func (s *Service) SupprimerChantier(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexChantier(id)
	if i < 0 {
		return domain.NotFound("Chantier", id)
	}
	if s.data.Chantiers[i].Statut == domain.ChantierEnCours {
		return domain.Referential("Impossible de supprimer: le chantier est en cours")
	}
	for _, d := range s.data.Depenses {
		if d.ChantierID == id {
			return domain.Referential("Impossible de supprimer: des dépenses sont associées à ce chantier")
		}
	}
	s.data.Chantiers = append(s.data.Chantiers[:i], s.data.Chantiers[i+1:]...)
	s.persist(ctx)
	return nil
}

// AssignerOuvrier adds a worker to the worksite team. Already-assigned
// workers are a no-op.
func (s *Service) AssignerOuvrier(ctx context.Context, chantierID, ouvrierID string) (*domain.Chantier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexChantier(chantierID)
	if i < 0 {
		return nil, domain.NotFound("Chantier", chantierID)
	}
	ch := &s.data.Chantiers[i]
	if !domain.ContientID(ch.EquipeAssignee, ouvrierID) {
		ch.EquipeAssignee = append(ch.EquipeAssignee, ouvrierID)
		s.persist(ctx)
	}
	return ch, nil
}

// --- Matériaux ---

type MateriauInput struct {
	Nom          string    `json:"nom"`
	Quantite     float64   `json:"quantite"`
	Unite        string    `json:"unite"`
	PrixUnitaire float64   `json:"prixUnitaire"`
	Fournisseur  string    `json:"fournisseur"`
	DateAchat    time.Time `json:"dateAchat"`
}

func (s *Service) AjouterMateriau(ctx context.Context, in MateriauInput) (*domain.Materiau, error) {
	if in.Nom == "" {
		return nil, domain.Invalid("Nom du matériau requis")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := domain.Materiau{
		ID:           uuid.NewString(),
		Nom:          in.Nom,
		Quantite:     in.Quantite,
		Unite:        in.Unite,
		PrixUnitaire: in.PrixUnitaire,
		PrixTotal:    in.Quantite * in.PrixUnitaire,
		Fournisseur:  in.Fournisseur,
		DateAchat:    in.DateAchat,
	}
	if m.DateAchat.IsZero() {
		m.DateAchat = s.now()
	}
	s.data.Materiaux = append(s.data.Materiaux, m)
	s.persist(ctx)
	return &m, nil
}

// --- Dépenses ---

type DepenseInput struct {
	ChantierID  string    `json:"chantierId"`
	Designation string    `json:"designation"`
	Montant     float64   `json:"montant"`
	Date        time.Time `json:"date"`
	Categorie   string    `json:"categorie"`
	Facture     string    `json:"facture"`
	Remarques   string    `json:"remarques"`
}

// AjouterDepense books an expense and keeps the worksite's running
// depensesTotales in step.
func (s *Service) AjouterDepense(ctx context.Context, in DepenseInput) (*domain.DepenseChantier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexChantier(in.ChantierID)
	if i < 0 {
		return nil, domain.NotFound("Chantier", in.ChantierID)
	}
	d := domain.DepenseChantier{
		ID:          uuid.NewString(),
		ChantierID:  in.ChantierID,
		Designation: in.Designation,
		Montant:     in.Montant,
		Date:        in.Date,
		Categorie:   in.Categorie,
		Facture:     in.Facture,
		Remarques:   in.Remarques,
	}
	if d.Date.IsZero() {
		d.Date = s.now()
	}
	s.data.Depenses = append(s.data.Depenses, d)
	s.data.Chantiers[i].DepensesTotales += in.Montant
	s.persist(ctx)
	return &d, nil
}

// --- Lectures ---

func (s *Service) Chantiers() []domain.Chantier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Chantier(nil), s.data.Chantiers...)
}

func (s *Service) Materiaux() []domain.Materiau {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Materiau(nil), s.data.Materiaux...)
}

func (s *Service) Depenses() []domain.DepenseChantier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DepenseChantier(nil), s.data.Depenses...)
}

// DepensesChantier lists the expenses booked against one worksite.
func (s *Service) DepensesChantier(chantierID string) []domain.DepenseChantier {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.DepenseChantier{}
	for _, d := range s.data.Depenses {
		if d.ChantierID == chantierID {
			out = append(out, d)
		}
	}
	return out
}

// ChantiersEnRetard lists running worksites past their planned end date.
func (s *Service) ChantiersEnRetard() []domain.Chantier {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := []domain.Chantier{}
	for _, ch := range s.data.Chantiers {
		if ch.Statut == domain.ChantierEnCours && ch.DatePrevue.Before(now) {
			out = append(out, ch)
		}
	}
	return out
}

// Statistiques is the construction dashboard summary.
type Statistiques struct {
	ChantiersActifs int     `json:"chantiersActifs"`
	OuvriersTotaux  int     `json:"ouvriersTotaux"`
	BudgetTotal     float64 `json:"budgetTotal"`
	DepensesTotales float64 `json:"depensesTotales"`
	MargeMoyenne    float64 `json:"margeMoyenne"`
}

// Statistiques recomputes the summary. MargeMoyenne is the rounded percent
// margin over all budgets, 0 when no budget has been committed.
func (s *Service) Statistiques() Statistiques {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Statistiques{}
	ouvriers := map[string]struct{}{}
	for _, ch := range s.data.Chantiers {
		if ch.Statut == domain.ChantierEnCours {
			st.ChantiersActifs++
		}
		for _, id := range ch.EquipeAssignee {
			ouvriers[id] = struct{}{}
		}
		st.BudgetTotal += ch.BudgetInitial
		st.DepensesTotales += ch.DepensesTotales
	}
	st.OuvriersTotaux = len(ouvriers)
	if st.BudgetTotal > 0 {
		st.MargeMoyenne = math.Round((st.BudgetTotal - st.DepensesTotales) / st.BudgetTotal * 100)
	}
	return st
}

// --- Sauvegarde / échange ---

func (s *Service) Module() string { return s.store.Module() }

func (s *Service) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Export(s.data)
}

func (s *Service) Import(ctx context.Context, payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.NewBTPData()
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

	next := domain.NewBTPData()
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
	next := domain.NewBTPData()
	s.store.Load(ctx, &next)
	s.data = next
}

func (s *Service) indexChantier(id string) int {
	for i := range s.data.Chantiers {
		if s.data.Chantiers[i].ID == id {
			return i
		}
	}
	return -1
}
