package vehicules

import (
	"context"
	"sync"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/pkg/patch"
	"fadem-backend/internal/pkg/validation"
	"fadem-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service owns the vehicle-fleet record set.
type Service struct {
	mu    sync.Mutex
	store *storage.Adapter
	now   func() time.Time
	data  domain.VehiculesData
}

// NewService loads the persisted record set (or starts empty).
func NewService(ctx context.Context, store *storage.Adapter) *Service {
	s := &Service{store: store, now: time.Now, data: domain.NewVehiculesData()}
	store.Load(ctx, &s.data)
	return s
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		log.Error().Err(err).Str("module", s.store.Module()).Msg("Écriture stockage échouée")
	}
}

// --- Propriétaires ---

type ProprietaireInput struct {
	Nom            string `json:"nom"`
	Prenom         string `json:"prenom"`
	Telephone      string `json:"telephone"`
	Email          string `json:"email"`
	Adresse        string `json:"adresse"`
	CNI            string `json:"cni"`
	PermisConduire string `json:"permisConduire"`
}

func (s *Service) AjouterProprietaire(ctx context.Context, in ProprietaireInput) (*domain.ProprietaireVehicule, error) {
	if in.Nom == "" || in.Telephone == "" {
		return nil, domain.Invalid("Nom et téléphone sont requis")
	}
	if !validation.IsValidTelephone(in.Telephone) {
		return nil, domain.Invalid("Numéro de téléphone invalide")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.ProprietaireVehicule{
		ID:                uuid.NewString(),
		Nom:               in.Nom,
		Prenom:            in.Prenom,
		Telephone:         in.Telephone,
		Email:             in.Email,
		Adresse:           in.Adresse,
		CNI:               in.CNI,
		PermisConduire:    in.PermisConduire,
		DateCreation:      s.now(),
		VehiculesConfies:  []string{},
		CommissionsRecues: 0,
	}
	s.data.Proprietaires = append(s.data.Proprietaires, p)
	s.persist(ctx)
	return &p, nil
}

type ProprietaireUpdate struct {
	Nom            *string `json:"nom"`
	Prenom         *string `json:"prenom"`
	Telephone      *string `json:"telephone"`
	Email          *string `json:"email"`
	Adresse        *string `json:"adresse"`
	CNI            *string `json:"cni"`
	PermisConduire *string `json:"permisConduire"`
}

func (s *Service) ModifierProprietaire(ctx context.Context, id string, up ProprietaireUpdate) (*domain.ProprietaireVehicule, error) {
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
	patch.String(&p.PermisConduire, up.PermisConduire)
	s.persist(ctx)
	return p, nil
}

func (s *Service) SupprimerProprietaire(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexProprietaire(id) < 0 {
		return domain.NotFound("Propriétaire", id)
	}
	for _, v := range s.data.Vehicules {
		if v.ProprietaireVehiculeID == id {
			return domain.Referential("Impossible de supprimer: des véhicules sont associés à ce propriétaire")
		}
	}
	out := s.data.Proprietaires[:0]
	for _, p := range s.data.Proprietaires {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.data.Proprietaires = out
	s.persist(ctx)
	return nil
}

// --- Véhicules ---

type VehiculeInput struct {
	ProprietaireVehiculeID string  `json:"proprietaireVehiculeId"`
	Marque                 string  `json:"marque"`
	Modele                 string  `json:"modele"`
	Annee                  int     `json:"annee"`
	Couleur                string  `json:"couleur"`
	Immatriculation        string  `json:"immatriculation"`
	NumeroSerie            string  `json:"numeroSerie"`
	TypeVehicule           string  `json:"typeVehicule"`
	PrixProprietaire       float64 `json:"prixProprietaire"`
	PrixFadem              float64 `json:"prixFadem"`
	Kilometrage            float64 `json:"kilometrage"`
	Carburant              string  `json:"carburant"`
}

func (s *Service) AjouterVehicule(ctx context.Context, in VehiculeInput) (*domain.Vehicule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.indexProprietaire(in.ProprietaireVehiculeID)
	if pi < 0 {
		return nil, domain.NotFound("Propriétaire", in.ProprietaireVehiculeID)
	}
	v := domain.Vehicule{
		ID:                     uuid.NewString(),
		ProprietaireVehiculeID: in.ProprietaireVehiculeID,
		Marque:                 in.Marque,
		Modele:                 in.Modele,
		Annee:                  in.Annee,
		Couleur:                in.Couleur,
		Immatriculation:        in.Immatriculation,
		NumeroSerie:            in.NumeroSerie,
		TypeVehicule:           in.TypeVehicule,
		PrixProprietaire:       in.PrixProprietaire,
		PrixFadem:              in.PrixFadem,
		Commission:             domain.CalculerCommission(in.PrixFadem, in.PrixProprietaire),
		Kilometrage:            in.Kilometrage,
		Carburant:              in.Carburant,
		Statut:                 domain.VehiculeDisponible,
		DateEnregistrement:     s.now(),
		ContratsLocation:       []string{},
		HistoriqueLocation:     []domain.HistoriqueLocation{},
	}
	s.data.Vehicules = append(s.data.Vehicules, v)
	s.data.Proprietaires[pi].VehiculesConfies = append(s.data.Proprietaires[pi].VehiculesConfies, v.ID)
	s.persist(ctx)
	return &v, nil
}

type VehiculeUpdate struct {
	Marque           *string  `json:"marque"`
	Modele           *string  `json:"modele"`
	Couleur          *string  `json:"couleur"`
	PrixProprietaire *float64 `json:"prixProprietaire"`
	PrixFadem        *float64 `json:"prixFadem"`
	Kilometrage      *float64 `json:"kilometrage"`
	Statut           *string  `json:"statut"`
}

func (s *Service) ModifierVehicule(ctx context.Context, id string, up VehiculeUpdate) (*domain.Vehicule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexVehicule(id)
	if i < 0 {
		return nil, domain.NotFound("Véhicule", id)
	}
	v := &s.data.Vehicules[i]
	patch.String(&v.Marque, up.Marque)
	patch.String(&v.Modele, up.Modele)
	patch.String(&v.Couleur, up.Couleur)
	patch.Float(&v.Kilometrage, up.Kilometrage)
	patch.String(&v.Statut, up.Statut)
	if up.PrixProprietaire != nil || up.PrixFadem != nil {
		patch.Float(&v.PrixProprietaire, up.PrixProprietaire)
		patch.Float(&v.PrixFadem, up.PrixFadem)
		v.Commission = domain.CalculerCommission(v.PrixFadem, v.PrixProprietaire)
	}
	s.persist(ctx)
	return v, nil
}

func (s *Service) SupprimerVehicule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexVehicule(id)
	if i < 0 {
		return domain.NotFound("Véhicule", id)
	}
	for _, c := range s.data.Contrats {
		if c.VehiculeID == id && c.Statut == domain.ContratVehiculeActif {
			return domain.Referential("Impossible de supprimer: le véhicule a des contrats actifs")
		}
	}
	proprietaireID := s.data.Vehicules[i].ProprietaireVehiculeID
	s.data.Vehicules = append(s.data.Vehicules[:i], s.data.Vehicules[i+1:]...)
	if pi := s.indexProprietaire(proprietaireID); pi >= 0 {
		s.data.Proprietaires[pi].VehiculesConfies = domain.RetirerID(s.data.Proprietaires[pi].VehiculesConfies, id)
	}
	s.persist(ctx)
	return nil
}

// --- Contrats ---

type ContratInput struct {
	VehiculeID       string    `json:"vehiculeId"`
	ClientNom        string    `json:"clientNom"`
	ClientTelephone  string    `json:"clientTelephone"`
	ClientCNI        string    `json:"clientCNI"`
	Type             string    `json:"type"`
	AvecChauffeur    bool      `json:"avecChauffeur"`
	Montant          float64   `json:"montant"`
	Caution          float64   `json:"caution"`
	DateDebut        time.Time `json:"dateDebut"`
	Duree            int       `json:"duree"`
	KilometrageDebut float64   `json:"kilometrageDebut"`
}

// CreerContrat opens a rental or sale contract; the vehicle must be
// disponible, flips to loue and records the contract in its list.
func (s *Service) CreerContrat(ctx context.Context, in ContratInput) (*domain.ContratVehicule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vi := s.indexVehicule(in.VehiculeID)
	if vi < 0 {
		return nil, domain.NotFound("Véhicule", in.VehiculeID)
	}
	if s.data.Vehicules[vi].Statut != domain.VehiculeDisponible {
		return nil, domain.Invalid("Le véhicule n'est pas disponible")
	}

	c := domain.ContratVehicule{
		ID:               uuid.NewString(),
		VehiculeID:       in.VehiculeID,
		ClientNom:        in.ClientNom,
		ClientTelephone:  in.ClientTelephone,
		ClientCNI:        in.ClientCNI,
		Type:             in.Type,
		AvecChauffeur:    in.AvecChauffeur,
		Montant:          in.Montant,
		Caution:          in.Caution,
		DateDebut:        in.DateDebut,
		Duree:            in.Duree,
		KilometrageDebut: in.KilometrageDebut,
		Statut:           domain.ContratVehiculeActif,
		Paiements:        []string{},
	}
	s.data.Contrats = append(s.data.Contrats, c)
	s.data.Vehicules[vi].ContratsLocation = append(s.data.Vehicules[vi].ContratsLocation, c.ID)
	s.data.Vehicules[vi].Statut = domain.VehiculeLoue
	s.persist(ctx)
	return &c, nil
}

type ContratUpdate struct {
	Montant        *float64 `json:"montant"`
	Caution        *float64 `json:"caution"`
	Duree          *int     `json:"duree"`
	KilometrageFin *float64 `json:"kilometrageFin"`
	Statut         *string  `json:"statut"`
}

func (s *Service) ModifierContrat(ctx context.Context, id string, up ContratUpdate) (*domain.ContratVehicule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexContrat(id)
	if i < 0 {
		return nil, domain.NotFound("Contrat", id)
	}
	c := &s.data.Contrats[i]
	patch.Float(&c.Montant, up.Montant)
	patch.Float(&c.Caution, up.Caution)
	patch.Int(&c.Duree, up.Duree)
	patch.Float(&c.KilometrageFin, up.KilometrageFin)
	patch.String(&c.Statut, up.Statut)
	s.persist(ctx)
	return c, nil
}

// TerminerLocation closes an active rental: stamps the end date, appends a
// history record to the fleet-wide log and to the vehicle itself, and frees
// the vehicle. Only contracts of type location with statut actif qualify.
func (s *Service) TerminerLocation(ctx context.Context, id string) (*domain.ContratVehicule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexContrat(id)
	if i < 0 {
		return nil, domain.NotFound("Contrat", id)
	}
	c := &s.data.Contrats[i]
	if c.Type != "location" || c.Statut != domain.ContratVehiculeActif {
		return nil, domain.Invalid("Seule une location active peut être terminée")
	}

	fin := s.now()
	c.Statut = domain.ContratVehiculeTermine
	c.DateFin = &fin

	hist := domain.HistoriqueLocation{
		DateDebut:   c.DateDebut,
		DateFin:     fin,
		Client:      c.ClientNom,
		Montant:     c.Montant,
		Kilometrage: c.KilometrageDebut,
	}
	s.data.Historique = append(s.data.Historique, hist)
	if vi := s.indexVehicule(c.VehiculeID); vi >= 0 {
		v := &s.data.Vehicules[vi]
		v.Statut = domain.VehiculeDisponible
		v.HistoriqueLocation = append(v.HistoriqueLocation, hist)
	}
	s.persist(ctx)
	return c, nil
}

// --- Lectures ---

func (s *Service) Vehicules() []domain.Vehicule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Vehicule(nil), s.data.Vehicules...)
}

func (s *Service) Proprietaires() []domain.ProprietaireVehicule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ProprietaireVehicule(nil), s.data.Proprietaires...)
}

func (s *Service) Contrats() []domain.ContratVehicule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ContratVehicule(nil), s.data.Contrats...)
}

func (s *Service) Historique() []domain.HistoriqueLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.HistoriqueLocation(nil), s.data.Historique...)
}

// VehiculesDisponibles lists vehicles currently free for rental.
func (s *Service) VehiculesDisponibles() []domain.Vehicule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Vehicule{}
	for _, v := range s.data.Vehicules {
		if v.Statut == domain.VehiculeDisponible {
			out = append(out, v)
		}
	}
	return out
}

// ContratsActifs lists contracts currently in force.
func (s *Service) ContratsActifs() []domain.ContratVehicule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.ContratVehicule{}
	for _, c := range s.data.Contrats {
		if c.Statut == domain.ContratVehiculeActif {
			out = append(out, c)
		}
	}
	return out
}

// Statistiques is the fleet dashboard summary.
type Statistiques struct {
	VehiculesTotal  int     `json:"vehiculesTotal"`
	EnLocation      int     `json:"enLocation"`
	Disponibles     int     `json:"disponibles"`
	RevenusMensuels float64 `json:"revenusMensuels"`
}

// Statistiques recomputes the fleet counters. RevenusMensuels sums the
// amounts of contracts starting in the current month.
func (s *Service) Statistiques() Statistiques {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Statistiques{VehiculesTotal: len(s.data.Vehicules)}
	for _, v := range s.data.Vehicules {
		switch v.Statut {
		case domain.VehiculeLoue:
			st.EnLocation++
		case domain.VehiculeDisponible:
			st.Disponibles++
		}
	}
	now := s.now()
	for _, c := range s.data.Contrats {
		if domain.MemeMois(c.DateDebut, now) {
			st.RevenusMensuels += c.Montant
		}
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

	next := domain.NewVehiculesData()
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

	next := domain.NewVehiculesData()
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
	next := domain.NewVehiculesData()
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

func (s *Service) indexVehicule(id string) int {
	for i := range s.data.Vehicules {
		if s.data.Vehicules[i].ID == id {
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
