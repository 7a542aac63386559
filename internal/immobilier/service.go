package immobilier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/pkg/patch"
	"fadem-backend/internal/pkg/validation"
	"fadem-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service owns the real-estate record set. One logical writer: every
// mutation runs under the mutex, enforces its guards before touching
// anything, then persists the whole record set.
type Service struct {
	mu    sync.Mutex
	store *storage.Adapter
	now   func() time.Time
	data  domain.ImmobilierData
}

// NewService loads the persisted record set (or starts empty).
func NewService(ctx context.Context, store *storage.Adapter) *Service {
	s := &Service{store: store, now: time.Now, data: domain.NewImmobilierData()}
	store.Load(ctx, &s.data)
	return s
}

// persist writes the record set. Storage failures are logged, never
// surfaced: the in-memory state stays authoritative.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		log.Error().Err(err).Str("module", s.store.Module()).Msg("Écriture stockage échouée")
	}
}

// --- Propriétaires ---

type ProprietaireInput struct {
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Adresse   string `json:"adresse"`
	CNI       string `json:"cni"`
}

func (s *Service) AjouterProprietaire(ctx context.Context, in ProprietaireInput) (*domain.Proprietaire, error) {
	if in.Nom == "" || in.Telephone == "" {
		return nil, domain.Invalid("Nom et téléphone sont requis")
	}
	if !validation.IsValidTelephone(in.Telephone) {
		return nil, domain.Invalid("Numéro de téléphone invalide")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Proprietaire{
		ID:                uuid.NewString(),
		Nom:               in.Nom,
		Prenom:            in.Prenom,
		Telephone:         in.Telephone,
		Email:             in.Email,
		Adresse:           in.Adresse,
		CNI:               in.CNI,
		DateCreation:      s.now(),
		BiensConfies:      []string{},
		CommissionsRecues: 0,
	}
	s.data.Proprietaires = append(s.data.Proprietaires, p)
	s.persist(ctx)
	return &p, nil
}

// ProprietaireUpdate lists the mutable fields; nil means "keep".
type ProprietaireUpdate struct {
	Nom       *string `json:"nom"`
	Prenom    *string `json:"prenom"`
	Telephone *string `json:"telephone"`
	Email     *string `json:"email"`
	Adresse   *string `json:"adresse"`
	CNI       *string `json:"cni"`
}

func (s *Service) ModifierProprietaire(ctx context.Context, id string, up ProprietaireUpdate) (*domain.Proprietaire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexProprietaire(id)
	if i < 0 {
		return nil, domain.NotFound("Propriétaire", id)
	}
	p := &s.data.Proprietaires[i]
	patch.String(&p.Nom, up.Nom)
	patch.String(&p.Prenom, up.Prenom)
	patch.String(&p.Telephone, up.Telephone)
	patch.String(&p.Email, up.Email)
	patch.String(&p.Adresse, up.Adresse)
	patch.String(&p.CNI, up.CNI)
	s.persist(ctx)
	return p, nil
}

func (s *Service) SupprimerProprietaire(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexProprietaire(id) < 0 {
		return domain.NotFound("Propriétaire", id)
	}
	for _, b := range s.data.Biens {
		if b.ProprietaireID == id {
			return domain.Referential("Impossible de supprimer: des biens sont associés à ce propriétaire")
		}
	}
	s.data.Proprietaires = supprimerProprietaireParID(s.data.Proprietaires, id)
	s.persist(ctx)
	return nil
}

// --- Biens ---

type BienInput struct {
	ProprietaireID   string  `json:"proprietaireId"`
	Type             string  `json:"type"`
	Adresse          string  `json:"adresse"`
	Quartier         string  `json:"quartier"`
	Superficie       float64 `json:"superficie"`
	Chambres         int     `json:"chambres"`
	SallesBain       int     `json:"sallesBain"`
	PrixProprietaire float64 `json:"prixProprietaire"`
	PrixFadem        float64 `json:"prixFadem"`
	Description      string  `json:"description"`
}

func (s *Service) AjouterBien(ctx context.Context, in BienInput) (*domain.Bien, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.indexProprietaire(in.ProprietaireID)
	if pi < 0 {
		return nil, domain.NotFound("Propriétaire", in.ProprietaireID)
	}
	b := domain.Bien{
		ID:                 uuid.NewString(),
		ProprietaireID:     in.ProprietaireID,
		Type:               in.Type,
		Adresse:            in.Adresse,
		Quartier:           in.Quartier,
		Superficie:         in.Superficie,
		Chambres:           in.Chambres,
		SallesBain:         in.SallesBain,
		PrixProprietaire:   in.PrixProprietaire,
		PrixFadem:          in.PrixFadem,
		Commission:         domain.CalculerCommission(in.PrixFadem, in.PrixProprietaire),
		Description:        in.Description,
		DateEnregistrement: s.now(),
		Statut:             domain.BienDisponible,
	}
	s.data.Biens = append(s.data.Biens, b)
	s.data.Proprietaires[pi].BiensConfies = append(s.data.Proprietaires[pi].BiensConfies, b.ID)
	s.persist(ctx)
	return &b, nil
}

// BienUpdate lists the mutable fields; nil means "keep". Commission is
// derived, never set directly.
type BienUpdate struct {
	Type             *string  `json:"type"`
	Adresse          *string  `json:"adresse"`
	Quartier         *string  `json:"quartier"`
	Superficie       *float64 `json:"superficie"`
	Chambres         *int     `json:"chambres"`
	SallesBain       *int     `json:"sallesBain"`
	PrixProprietaire *float64 `json:"prixProprietaire"`
	PrixFadem        *float64 `json:"prixFadem"`
	Description      *string  `json:"description"`
	Statut           *string  `json:"statut"`
}

func (s *Service) ModifierBien(ctx context.Context, id string, up BienUpdate) (*domain.Bien, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexBien(id)
	if i < 0 {
		return nil, domain.NotFound("Bien", id)
	}
	b := &s.data.Biens[i]
	patch.String(&b.Type, up.Type)
	patch.String(&b.Adresse, up.Adresse)
	patch.String(&b.Quartier, up.Quartier)
	patch.Float(&b.Superficie, up.Superficie)
	patch.Int(&b.Chambres, up.Chambres)
	patch.Int(&b.SallesBain, up.SallesBain)
	patch.String(&b.Description, up.Description)
	patch.String(&b.Statut, up.Statut)
	if up.PrixProprietaire != nil || up.PrixFadem != nil {
		patch.Float(&b.PrixProprietaire, up.PrixProprietaire)
		patch.Float(&b.PrixFadem, up.PrixFadem)
		b.Commission = domain.CalculerCommission(b.PrixFadem, b.PrixProprietaire)
	}
	s.persist(ctx)
	return b, nil
}

func (s *Service) SupprimerBien(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexBien(id)
	if i < 0 {
		return domain.NotFound("Bien", id)
	}
	for _, c := range s.data.Contrats {
		if c.BienID == id && c.Statut == domain.ContratActif {
			return domain.Referential("Impossible de supprimer: le bien a des contrats actifs")
		}
	}
	proprietaireID := s.data.Biens[i].ProprietaireID
	s.data.Biens = append(s.data.Biens[:i], s.data.Biens[i+1:]...)
	if pi := s.indexProprietaire(proprietaireID); pi >= 0 {
		s.data.Proprietaires[pi].BiensConfies = domain.RetirerID(s.data.Proprietaires[pi].BiensConfies, id)
	}
	s.persist(ctx)
	return nil
}

// --- Locataires ---

type LocataireInput struct {
	Nom                   string    `json:"nom"`
	Prenom                string    `json:"prenom"`
	Telephone             string    `json:"telephone"`
	Email                 string    `json:"email"`
	Adresse               string    `json:"adresse"`
	Profession            string    `json:"profession"`
	Entreprise            string    `json:"entreprise"`
	CNI                   string    `json:"cni"`
	DateNaissance         time.Time `json:"dateNaissance"`
	SituationMatrimoniale string    `json:"situationMatrimoniale"`
	PersonnesACharge      int       `json:"personnesACharge"`
	Revenus               float64   `json:"revenus"`
}

func (s *Service) AjouterLocataire(ctx context.Context, in LocataireInput) (*domain.Locataire, error) {
	if in.Nom == "" || in.Telephone == "" {
		return nil, domain.Invalid("Nom et téléphone sont requis")
	}
	if !validation.IsValidTelephone(in.Telephone) {
		return nil, domain.Invalid("Numéro de téléphone invalide")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l := domain.Locataire{
		ID:                    uuid.NewString(),
		Nom:                   in.Nom,
		Prenom:                in.Prenom,
		Telephone:             in.Telephone,
		Email:                 in.Email,
		Adresse:               in.Adresse,
		Profession:            in.Profession,
		Entreprise:            in.Entreprise,
		CNI:                   in.CNI,
		DateNaissance:         in.DateNaissance,
		SituationMatrimoniale: in.SituationMatrimoniale,
		PersonnesACharge:      in.PersonnesACharge,
		Revenus:               in.Revenus,
		DateCreation:          s.now(),
		ContratsActifs:        []string{},
	}
	s.data.Locataires = append(s.data.Locataires, l)
	s.persist(ctx)
	return &l, nil
}

type LocataireUpdate struct {
	Nom              *string  `json:"nom"`
	Prenom           *string  `json:"prenom"`
	Telephone        *string  `json:"telephone"`
	Email            *string  `json:"email"`
	Adresse          *string  `json:"adresse"`
	Profession       *string  `json:"profession"`
	Entreprise       *string  `json:"entreprise"`
	PersonnesACharge *int     `json:"personnesACharge"`
	Revenus          *float64 `json:"revenus"`
}

func (s *Service) ModifierLocataire(ctx context.Context, id string, up LocataireUpdate) (*domain.Locataire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocataire(id)
	if i < 0 {
		return nil, domain.NotFound("Locataire", id)
	}
	l := &s.data.Locataires[i]
	patch.String(&l.Nom, up.Nom)
	patch.String(&l.Prenom, up.Prenom)
	patch.String(&l.Telephone, up.Telephone)
	patch.String(&l.Email, up.Email)
	patch.String(&l.Adresse, up.Adresse)
	patch.String(&l.Profession, up.Profession)
	patch.String(&l.Entreprise, up.Entreprise)
	patch.Int(&l.PersonnesACharge, up.PersonnesACharge)
	patch.Float(&l.Revenus, up.Revenus)
	s.persist(ctx)
	return l, nil
}

func (s *Service) SupprimerLocataire(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocataire(id) < 0 {
		return domain.NotFound("Locataire", id)
	}
	for _, c := range s.data.Contrats {
		if c.LocataireID == id && c.Statut == domain.ContratActif {
			return domain.Referential("Impossible de supprimer: le locataire a des contrats actifs")
		}
	}
	s.data.Locataires = supprimerLocataireParID(s.data.Locataires, id)
	s.persist(ctx)
	return nil
}

// --- Contrats ---

type ContratInput struct {
	BienID         string    `json:"bienId"`
	LocataireID    string    `json:"locataireId"`
	Type           string    `json:"type"`
	MontantMensuel float64   `json:"montantMensuel"`
	Caution        float64   `json:"caution"`
	Avance         float64   `json:"avance"`
	DateDebut      time.Time `json:"dateDebut"`
	Duree          int       `json:"duree"`
}

/// CreerContrat signs a lease: the bien must be disponible. On success the
// bien flips to loue with contratActuel set, and the contract id joins the
// locataire's active list.
func (s *Service) CreerContrat(ctx context.Context, in ContratInput) (*domain.Contrat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := s.indexBien(in.BienID)
	if bi < 0 {
		return nil, domain.NotFound("Bien", in.BienID)
	}
	li := s.indexLocataire(in.LocataireID)
	if li < 0 {
		return nil, domain.NotFound("Locataire", in.LocataireID)
	}
	if s.data.Biens[bi].Statut != domain.BienDisponible {
		return nil, domain.Invalid("Le bien n'est pas disponible")
	}

	c := domain.Contrat{
		ID:             uuid.NewString(),
		BienID:         in.BienID,
		LocataireID:    in.LocataireID,
		ProprietaireID: s.data.Biens[bi].ProprietaireID,
		Type:           in.Type,
		MontantMensuel: in.MontantMensuel,
		Caution:        in.Caution,
		Avance:         in.Avance,
		DateDebut:      in.DateDebut,
		Duree:          in.Duree,
		DateSignature:  s.now(),
		Statut:         domain.ContratActif,
		Paiements:      []string{},
		Factures:       []string{},
	}
	s.data.Contrats = append(s.data.Contrats, c)
	s.data.Biens[bi].Statut = domain.BienLoue
	s.data.Biens[bi].ContratActuel = c.ID
	s.data.Locataires[li].ContratsActifs = append(s.data.Locataires[li].ContratsActifs, c.ID)
	s.persist(ctx)
	return &c, nil
}

type ContratUpdate struct {
	MontantMensuel *float64 `json:"montantMensuel"`
	Caution        *float64 `json:"caution"`
	Avance         *float64 `json:"avance"`
	Duree          *int     `json:"duree"`
	Statut         *string  `json:"statut"`
}

func (s *Service) ModifierContrat(ctx context.Context, id string, up ContratUpdate) (*domain.Contrat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexContrat(id)
	if i < 0 {
		return nil, domain.NotFound("Contrat", id)
	}
	c := &s.data.Contrats[i]
	patch.Float(&c.MontantMensuel, up.MontantMensuel)
	patch.Float(&c.Caution, up.Caution)
	patch.Float(&c.Avance, up.Avance)
	patch.Int(&c.Duree, up.Duree)
	patch.String(&c.Statut, up.Statut)
	s.persist(ctx)
	return c, nil
}

// ResilierContrat terminates a lease: stamps the end date, frees the bien
// and strips the contract from the locataire's active list.
func (s *Service) ResilierContrat(ctx context.Context, id, motif string) (*domain.Contrat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexContrat(id)
	if i < 0 {
		return nil, domain.NotFound("Contrat", id)
	}
	c := &s.data.Contrats[i]
	fin := s.now()
	c.Statut = domain.ContratResilie
	c.DateFin = &fin
	c.MotifResiliation = motif

	if bi := s.indexBien(c.BienID); bi >= 0 {
		s.data.Biens[bi].Statut = domain.BienDisponible
		s.data.Biens[bi].ContratActuel = ""
	}
	if li := s.indexLocataire(c.LocataireID); li >= 0 {
		s.data.Locataires[li].ContratsActifs = domain.RetirerID(s.data.Locataires[li].ContratsActifs, id)
	}
	s.persist(ctx)
	return c, nil
}

// --- Paiements ---

type PaiementInput struct {
	ContratID            string    `json:"contratId"`
	Montant              float64   `json:"montant"`
	DatePaiement         time.Time `json:"datePaiement"`
	DateEcheance         time.Time `json:"dateEcheance"`
	ModePaiement         string    `json:"modePaiement"`
	ReferenceTransaction string    `json:"referenceTransaction"`
	Statut               string    `json:"statut"`
	Penalites            float64   `json:"penalites"`
	Remarques            string    `json:"remarques"`
}

// EnregistrerPaiement records a payment against a contract and issues a
// receipt number. Contract status is left to the caller.
func (s *Service) EnregistrerPaiement(ctx context.Context, in PaiementInput) (*domain.Paiement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ci := s.indexContrat(in.ContratID)
	if ci < 0 {
		return nil, domain.NotFound("Contrat", in.ContratID)
	}
	p := domain.Paiement{
		ID:                   uuid.NewString(),
		ContratID:            in.ContratID,
		Montant:              in.Montant,
		DatePaiement:         in.DatePaiement,
		DateEcheance:         in.DateEcheance,
		ModePaiement:         in.ModePaiement,
		ReferenceTransaction: in.ReferenceTransaction,
		Statut:               in.Statut,
		Penalites:            in.Penalites,
		Remarques:            in.Remarques,
		Recu:                 recu(s.now()),
	}
	s.data.Paiements = append(s.data.Paiements, p)
	s.data.Contrats[ci].Paiements = append(s.data.Contrats[ci].Paiements, p.ID)
	s.persist(ctx)
	return &p, nil
}

// --- Lectures ---

func (s *Service) Proprietaires() []domain.Proprietaire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Proprietaire(nil), s.data.Proprietaires...)
}

func (s *Service) Biens() []domain.Bien {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Bien(nil), s.data.Biens...)
}

func (s *Service) Locataires() []domain.Locataire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Locataire(nil), s.data.Locataires...)
}

func (s *Service) Contrats() []domain.Contrat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Contrat(nil), s.data.Contrats...)
}

func (s *Service) Paiements() []domain.Paiement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Paiement(nil), s.data.Paiements...)
}

// Statistiques is the real-estate dashboard summary.
type Statistiques struct {
	Proprietaires    int     `json:"proprietaires"`
	BiensTotal       int     `json:"biensTotal"`
	BiensLoues       int     `json:"biensLoues"`
	BiensDisponibles int     `json:"biensDisponibles"`
	Locataires       int     `json:"locataires"`
	ContratsActifs   int     `json:"contratsActifs"`
	Revenus          float64 `json:"revenus"`
}

// Statistiques recomputes the dashboard counters on every call. Revenus is
// the sum of payments marked paye with a payment date in the current month.
func (s *Service) Statistiques() Statistiques {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Statistiques{
		Proprietaires: len(s.data.Proprietaires),
		BiensTotal:    len(s.data.Biens),
		Locataires:    len(s.data.Locataires),
	}
	for _, b := range s.data.Biens {
		switch b.Statut {
		case domain.BienLoue:
			st.BiensLoues++
		case domain.BienDisponible:
			st.BiensDisponibles++
		}
	}
	for _, c := range s.data.Contrats {
		if c.Statut == domain.ContratActif {
			st.ContratsActifs++
		}
	}
	now := s.now()
	for _, p := range s.data.Paiements {
		if p.Statut == domain.PaiementPaye && domain.MemeMois(p.DatePaiement, now) {
			st.Revenus += p.Montant
		}
	}
	return st
}

// PaiementsEnRetard lists payments past due and not yet settled.
func (s *Service) PaiementsEnRetard() []domain.Paiement {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := []domain.Paiement{}
	for _, p := range s.data.Paiements {
		if p.Statut != domain.PaiementPaye && p.DateEcheance.Before(now) {
			out = append(out, p)
		}
	}
	return out
}

// EcheancesProchaines lists unsettled payments due within the next jours
// days (7 by default).
func (s *Service) EcheancesProchaines(jours int) []domain.Paiement {
	if jours <= 0 {
		jours = 7
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	limite := now.AddDate(0, 0, jours)
	out := []domain.Paiement{}
	for _, p := range s.data.Paiements {
		if p.Statut != domain.PaiementPaye && !p.DateEcheance.Before(now) && !p.DateEcheance.After(limite) {
			out = append(out, p)
		}
	}
	return out
}

// --- Sauvegarde / échange ---

// Module names the persisted slice this service owns.
func (s *Service) Module() string { return s.store.Module() }

// Export serializes the record set in the module export layout.
func (s *Service) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Export(s.data)
}

// Import replaces the record set from an export payload whose module tag
// matches; otherwise a no-op returning false.
func (s *Service) Import(ctx context.Context, payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.NewImmobilierData()
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

	next := domain.NewImmobilierData()
	if !s.store.RestoreBackup(ctx, &next) {
		return false
	}
	s.data = next
	s.persist(ctx)
	return true
}

// Reload re-reads the persisted record set (after a whole-app import).
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := domain.NewImmobilierData()
	s.store.Load(ctx, &next)
	s.data = next
}

// --- aides internes ---

func (s *Service) indexProprietaire(id string) int {
	for i := range s.data.Proprietaires {
		if s.data.Proprietaires[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexBien(id string) int {
	for i := range s.data.Biens {
		if s.data.Biens[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexLocataire(id string) int {
	for i := range s.data.Locataires {
		if s.data.Locataires[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexContrat(id string) int {
	for i := range s.data.Contrats {
		if s.data.Contrats[i].ID == id {
			return i
		}
	}
	return -1
}

// recu issues a receipt number in the historical REC-<unix-ms> format.
func recu(t time.Time) string {
	return fmt.Sprintf("REC-%d", t.UnixMilli())
}

func supprimerProprietaireParID(in []domain.Proprietaire, id string) []domain.Proprietaire {
	out := in[:0]
	for _, p := range in {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func supprimerLocataireParID(in []domain.Locataire, id string) []domain.Locataire {
	out := in[:0]
	for _, l := range in {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}
