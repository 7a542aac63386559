package comptabilite

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

// Service owns the accounting record set. Account balances are maintained
// incrementally: every transaction posting, edit and removal adjusts
// soldeActuel so that it always equals soldeInitial plus the signed sum of
// the account's transactions.
type Service struct {
	mu    sync.Mutex
	store *storage.Adapter
	now   func() time.Time
	data  domain.ComptabiliteData
}

func NewService(ctx context.Context, store *storage.Adapter) *Service {
	s := &Service{store: store, now: time.Now, data: domain.NewComptabiliteData()}
	store.Load(ctx, &s.data)
	if len(s.data.Categories) == 0 {
		s.data.Categories = domain.CategoriesDefaut()
	}
	return s
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		log.Error().Err(err).Str("module", s.store.Module()).Msg("Écriture stockage échouée")
	}
}

// --- Comptes ---

type CompteInput struct {
	Nom          string  `json:"nom"`
	Type         string  `json:"type"`
	Numero       string  `json:"numero"`
	Banque       string  `json:"banque"`
	SoldeInitial float64 `json:"soldeInitial"`
	Devise       string  `json:"devise"`
	Description  string  `json:"description"`
}

func (s *Service) AjouterCompte(ctx context.Context, in CompteInput) (*domain.Compte, error) {
	if in.Nom == "" {
		return nil, domain.Invalid("Nom du compte requis")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := domain.Compte{
		ID:            uuid.NewString(),
		Nom:           in.Nom,
		Type:          in.Type,
		Numero:        in.Numero,
		Banque:        in.Banque,
		SoldeInitial:  in.SoldeInitial,
		SoldeActuel:   in.SoldeInitial,
		Devise:        in.Devise,
		DateOuverture: s.now(),
		Statut:        domain.CompteActif,
		Description:   in.Description,
	}
	if cp.Devise == "" {
		cp.Devise = "GNF"
	}
	s.data.Comptes = append(s.data.Comptes, cp)
	s.persist(ctx)
	return &cp, nil
}

type CompteUpdate struct {
	Nom          *string  `json:"nom"`
	Type         *string  `json:"type"`
	Numero       *string  `json:"numero"`
	Banque       *string  `json:"banque"`
	SoldeInitial *float64 `json:"soldeInitial"`
	Devise       *string  `json:"devise"`
	Statut       *string  `json:"statut"`
	Description  *string  `json:"description"`
}

// ModifierCompte merges non-nil fields. Editing soldeInitial does not
// recompute soldeActuel.
func (s *Service) ModifierCompte(ctx context.Context, id string, up CompteUpdate) (*domain.Compte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexCompte(id)
	if i < 0 {
		return nil, domain.NotFound("Compte", id)
	}
	cp := &s.data.Comptes[i]
	patch.String(&cp.Nom, up.Nom)
	patch.String(&cp.Type, up.Type)
	patch.String(&cp.Numero, up.Numero)
	patch.String(&cp.Banque, up.Banque)
	patch.Float(&cp.SoldeInitial, up.SoldeInitial)
	patch.String(&cp.Devise, up.Devise)
	patch.String(&cp.Statut, up.Statut)
	patch.String(&cp.Description, up.Description)
	s.persist(ctx)
	return cp, nil
}

func (s *Service) SupprimerCompte(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexCompte(id)
	if i < 0 {
		return domain.NotFound("Compte", id)
	}
	for _, t := range s.data.Transactions {
		if t.CompteID == id {
			return domain.Referential("Impossible de supprimer: des transactions sont associées à ce compte")
		}
	}
	s.data.Comptes = append(s.data.Comptes[:i], s.data.Comptes[i+1:]...)
	s.persist(ctx)
	return nil
}

// --- Transactions ---

type TransactionInput struct {
	Date               time.Time `json:"date"`
	Type               string    `json:"type"`
	Montant            float64   `json:"montant"`
	CategorieID        string    `json:"categorieId"`
	Module             string    `json:"module"`
	CompteID           string    `json:"compteId"`
	Reference          string    `json:"reference"`
	Description        string    `json:"description"`
	ModePaiement       string    `json:"modePaiement"`
	NumeroTransaction  string    `json:"numeroTransaction"`
	Statut             string    `json:"statut"`
	PieceJustificative string    `json:"pieceJustificative"`
	Remarques          string    `json:"remarques"`
}

// AjouterTransaction posts an entry against an existing account and adjusts
// its balance.
func (s *Service) AjouterTransaction(ctx context.Context, in TransactionInput) (*domain.TransactionComptable, error) {
	if in.Type != domain.TransactionRecette && in.Type != domain.TransactionDepense {
		return nil, domain.Invalid("Type de transaction invalide: recette ou depense attendu")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ci := s.indexCompte(in.CompteID)
	if ci < 0 {
		return nil, domain.NotFound("Compte", in.CompteID)
	}
	t := domain.TransactionComptable{
		ID:                 uuid.NewString(),
		Date:               in.Date,
		Type:               in.Type,
		Montant:            in.Montant,
		CategorieID:        in.CategorieID,
		Module:             in.Module,
		CompteID:           in.CompteID,
		Reference:          in.Reference,
		Description:        in.Description,
		ModePaiement:       in.ModePaiement,
		NumeroTransaction:  in.NumeroTransaction,
		Statut:             in.Statut,
		PieceJustificative: in.PieceJustificative,
		Remarques:          in.Remarques,
	}
	if t.Date.IsZero() {
		t.Date = s.now()
	}
	if t.Statut == "" {
		t.Statut = domain.TransactionValidee
	}
	s.data.Transactions = append(s.data.Transactions, t)
	s.appliquer(ci, t.Type, t.Montant)
	s.persist(ctx)
	return &t, nil
}

type TransactionUpdate struct {
	Date        *time.Time `json:"date"`
	Type        *string    `json:"type"`
	Montant     *float64   `json:"montant"`
	CategorieID *string    `json:"categorieId"`
	Module      *string    `json:"module"`
	CompteID    *string    `json:"compteId"`
	Description *string    `json:"description"`
	Statut      *string    `json:"statut"`
	Remarques   *string    `json:"remarques"`
}

// ModifierTransaction reverses the stored entry's effect on its original
// account, merges the update, then applies the merged entry's effect on
// that same account, even when compteId changes.
func (s *Service) ModifierTransaction(ctx context.Context, id string, up TransactionUpdate) (*domain.TransactionComptable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.indexTransaction(id)
	if ti < 0 {
		return nil, domain.NotFound("Transaction", id)
	}
	t := &s.data.Transactions[ti]
	origCompte := s.indexCompte(t.CompteID)
	if origCompte >= 0 {
		s.annuler(origCompte, t.Type, t.Montant)
	}

	patch.Time(&t.Date, up.Date)
	patch.String(&t.Type, up.Type)
	patch.Float(&t.Montant, up.Montant)
	patch.String(&t.CategorieID, up.CategorieID)
	patch.String(&t.Module, up.Module)
	patch.String(&t.CompteID, up.CompteID)
	patch.String(&t.Description, up.Description)
	patch.String(&t.Statut, up.Statut)
	patch.String(&t.Remarques, up.Remarques)

	if origCompte >= 0 {
		s.appliquer(origCompte, t.Type, t.Montant)
	}
	s.persist(ctx)
	return t, nil
}

// SupprimerTransaction removes the entry and reverses its balance effect.
func (s *Service) SupprimerTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.indexTransaction(id)
	if ti < 0 {
		return domain.NotFound("Transaction", id)
	}
	t := s.data.Transactions[ti]
	if ci := s.indexCompte(t.CompteID); ci >= 0 {
		s.annuler(ci, t.Type, t.Montant)
	}
	s.data.Transactions = append(s.data.Transactions[:ti], s.data.Transactions[ti+1:]...)
	s.persist(ctx)
	return nil
}

func (s *Service) appliquer(compte int, typ string, montant float64) {
	if typ == domain.TransactionRecette {
		s.data.Comptes[compte].SoldeActuel += montant
	} else {
		s.data.Comptes[compte].SoldeActuel -= montant
	}
}

func (s *Service) annuler(compte int, typ string, montant float64) {
	if typ == domain.TransactionRecette {
		s.data.Comptes[compte].SoldeActuel -= montant
	} else {
		s.data.Comptes[compte].SoldeActuel += montant
	}
}

// --- Catégories ---

type CategorieInput struct {
	Nom         string `json:"nom"`
	Type        string `json:"type"`
	Couleur     string `json:"couleur"`
	Description string `json:"description"`
}

func (s *Service) AjouterCategorie(ctx context.Context, in CategorieInput) (*domain.CategorieTransaction, error) {
	if in.Nom == "" {
		return nil, domain.Invalid("Nom de la catégorie requis")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := domain.CategorieTransaction{
		ID:          uuid.NewString(),
		Nom:         in.Nom,
		Type:        in.Type,
		Couleur:     in.Couleur,
		Description: in.Description,
	}
	s.data.Categories = append(s.data.Categories, cat)
	s.persist(ctx)
	return &cat, nil
}

// --- Lectures ---

func (s *Service) Comptes() []domain.Compte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Compte(nil), s.data.Comptes...)
}

func (s *Service) Transactions() []domain.TransactionComptable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TransactionComptable(nil), s.data.Transactions...)
}

func (s *Service) Categories() []domain.CategorieTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CategorieTransaction(nil), s.data.Categories...)
}

// Statistiques is the accounting dashboard summary. Only validated
// transactions count toward the sums.
type Statistiques struct {
	RevenusJour      float64 `json:"revenusJour"`
	DepensesJour     float64 `json:"depensesJour"`
	BeneficesNet     float64 `json:"beneficesNet"`
	RevenusMois      float64 `json:"revenusMois"`
	DepensesMois     float64 `json:"depensesMois"`
	MargeNette       float64 `json:"margeNette"`
	SoldeTotal       float64 `json:"soldeTotal"`
	NombreComptes    int     `json:"nombreComptes"`
	TransactionsJour int     `json:"transactionsJour"`
	TransactionsMois int     `json:"transactionsMois"`
}

func (s *Service) Statistiques() Statistiques {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Statistiques{NombreComptes: len(s.data.Comptes)}
	now := s.now()
	for _, t := range s.data.Transactions {
		if t.Statut != domain.TransactionValidee {
			continue
		}
		jour := domain.MemeJour(t.Date, now)
		mois := domain.MemeMois(t.Date, now)
		if jour {
			st.TransactionsJour++
			if t.Type == domain.TransactionRecette {
				st.RevenusJour += t.Montant
			} else {
				st.DepensesJour += t.Montant
			}
		}
		if mois {
			st.TransactionsMois++
			if t.Type == domain.TransactionRecette {
				st.RevenusMois += t.Montant
			} else {
				st.DepensesMois += t.Montant
			}
		}
	}
	st.BeneficesNet = st.RevenusJour - st.DepensesJour
	if st.RevenusMois > 0 {
		st.MargeNette = arrondi2((st.RevenusMois - st.DepensesMois) / st.RevenusMois * 100)
	}
	for _, cp := range s.data.Comptes {
		if cp.Statut == domain.CompteActif {
			st.SoldeTotal += cp.SoldeActuel
		}
	}
	return st
}

// BilansComptes builds the per-account balance sheet for the current month.
// SoldeFin is the account's running balance, an all-time figure.
func (s *Service) BilansComptes() []domain.BilanCompte {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	bilans := make([]domain.BilanCompte, 0, len(s.data.Comptes))
	for _, cp := range s.data.Comptes {
		b := domain.BilanCompte{
			CompteID:   cp.ID,
			NomCompte:  cp.Nom,
			SoldeDebut: cp.SoldeInitial,
			SoldeFin:   cp.SoldeActuel,
		}
		for _, t := range s.data.Transactions {
			if t.CompteID != cp.ID || t.Statut != domain.TransactionValidee || !domain.MemeMois(t.Date, now) {
				continue
			}
			b.NombreTransactions++
			if t.Type == domain.TransactionRecette {
				b.TotalRecettes += t.Montant
			} else {
				b.TotalDepenses += t.Montant
			}
		}
		bilans = append(bilans, b)
	}
	return bilans
}

// RevenuModule is one module's share of this month's validated revenue.
type RevenuModule struct {
	Module      string  `json:"module"`
	Montant     float64 `json:"montant"`
	Pourcentage float64 `json:"pourcentage"`
}

func (s *Service) RevenusParModule() []RevenuModule {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	parModule := map[string]float64{}
	var total float64
	for _, t := range s.data.Transactions {
		if t.Type != domain.TransactionRecette || t.Statut != domain.TransactionValidee || !domain.MemeMois(t.Date, now) {
			continue
		}
		parModule[t.Module] += t.Montant
		total += t.Montant
	}
	out := make([]RevenuModule, 0, len(parModule))
	for module, montant := range parModule {
		rm := RevenuModule{Module: module, Montant: montant}
		if total > 0 {
			rm.Pourcentage = arrondi2(montant / total * 100)
		}
		out = append(out, rm)
	}
	return out
}

// DepenseCategorie is one category's share of this month's validated
// expenses. Unknown category ids fall under "Non classé".
type DepenseCategorie struct {
	Categorie string  `json:"categorie"`
	Montant   float64 `json:"montant"`
}

func (s *Service) DepensesParCategorie() []DepenseCategorie {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	noms := map[string]string{}
	for _, cat := range s.data.Categories {
		noms[cat.ID] = cat.Nom
	}
	parCategorie := map[string]float64{}
	for _, t := range s.data.Transactions {
		if t.Type != domain.TransactionDepense || t.Statut != domain.TransactionValidee || !domain.MemeMois(t.Date, now) {
			continue
		}
		nom, ok := noms[t.CategorieID]
		if !ok {
			nom = "Non classé"
		}
		parCategorie[nom] += t.Montant
	}
	out := make([]DepenseCategorie, 0, len(parCategorie))
	for nom, montant := range parCategorie {
		out = append(out, DepenseCategorie{Categorie: nom, Montant: montant})
	}
	return out
}

func arrondi2(v float64) float64 {
	return math.Round(v*100) / 100
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

	next := domain.NewComptabiliteData()
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

	next := domain.NewComptabiliteData()
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
	next := domain.NewComptabiliteData()
	s.store.Load(ctx, &next)
	s.data = next
}

func (s *Service) indexCompte(id string) int {
	for i := range s.data.Comptes {
		if s.data.Comptes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexTransaction(id string) int {
	for i := range s.data.Transactions {
		if s.data.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}
