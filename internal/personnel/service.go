package personnel

import (
	"context"
	"sync"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/pkg/patch"
	"fadem-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service owns the HR record set: employees, salaries, leave, absences,
// trainings.
type Service struct {
	mu    sync.Mutex
	store *storage.Adapter
	now   func() time.Time
	data  domain.PersonnelData
}

func NewService(ctx context.Context, store *storage.Adapter) *Service {
	s := &Service{store: store, now: time.Now, data: domain.NewPersonnelData()}
	store.Load(ctx, &s.data)
	return s
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		log.Error().Err(err).Str("module", s.store.Module()).Msg("Écriture stockage échouée")
	}
}

// --- Employés ---

type EmployeInput struct {
	Nom            string    `json:"nom"`
	Prenom         string    `json:"prenom"`
	Telephone      string    `json:"telephone"`
	Email          string    `json:"email"`
	Adresse        string    `json:"adresse"`
	CNI            string    `json:"cni"`
	DateNaissance  time.Time `json:"dateNaissance"`
	DateEmbauche   time.Time `json:"dateEmbauche"`
	Poste          string    `json:"poste"`
	Departement    string    `json:"departement"`
	SalaireMensuel float64   `json:"salaireMensuel"`
	TypeContrat    string    `json:"typeContrat"`
	Competences    []string  `json:"competences"`
}

func (s *Service) AjouterEmploye(ctx context.Context, in EmployeInput) (*domain.Employe, error) {
	if in.Nom == "" || in.Poste == "" {
		return nil, domain.Invalid("Nom et poste sont requis")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := domain.Employe{
		ID:             uuid.NewString(),
		Nom:            in.Nom,
		Prenom:         in.Prenom,
		Telephone:      in.Telephone,
		Email:          in.Email,
		Adresse:        in.Adresse,
		CNI:            in.CNI,
		DateNaissance:  in.DateNaissance,
		DateEmbauche:   in.DateEmbauche,
		Poste:          in.Poste,
		Departement:    in.Departement,
		SalaireMensuel: in.SalaireMensuel,
		TypeContrat:    in.TypeContrat,
		Statut:         domain.EmployeActif,
		Competences:    in.Competences,
	}
	if e.DateEmbauche.IsZero() {
		e.DateEmbauche = s.now()
	}
	s.data.Employes = append(s.data.Employes, e)
	s.persist(ctx)
	return &e, nil
}

type EmployeUpdate struct {
	Nom            *string  `json:"nom"`
	Prenom         *string  `json:"prenom"`
	Telephone      *string  `json:"telephone"`
	Email          *string  `json:"email"`
	Adresse        *string  `json:"adresse"`
	Poste          *string  `json:"poste"`
	Departement    *string  `json:"departement"`
	SalaireMensuel *float64 `json:"salaireMensuel"`
	TypeContrat    *string  `json:"typeContrat"`
	Statut         *string  `json:"statut"`
}

func (s *Service) ModifierEmploye(ctx context.Context, id string, up EmployeUpdate) (*domain.Employe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexEmploye(id)
	if i < 0 {
		return nil, domain.NotFound("Employé", id)
	}
	e := &s.data.Employes[i]
	patch.String(&e.Nom, up.Nom)
	patch.String(&e.Prenom, up.Prenom)
	patch.String(&e.Telephone, up.Telephone)
	patch.String(&e.Email, up.Email)
	patch.String(&e.Adresse, up.Adresse)
	patch.String(&e.Poste, up.Poste)
	patch.String(&e.Departement, up.Departement)
	patch.Float(&e.SalaireMensuel, up.SalaireMensuel)
	patch.String(&e.TypeContrat, up.TypeContrat)
	patch.String(&e.Statut, up.Statut)
	s.persist(ctx)
	return e, nil
}

func (s *Service) SupprimerEmploye(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexEmploye(id)
	if i < 0 {
		return domain.NotFound("Employé", id)
	}
	s.data.Employes = append(s.data.Employes[:i], s.data.Employes[i+1:]...)
	s.persist(ctx)
	return nil
}

// --- Salaires ---

type SalaireInput struct {
	EmployeID    string    `json:"employeId"`
	Mois         int       `json:"mois"`
	Annee        int       `json:"annee"`
	SalaireBase  float64   `json:"salaireBase"`
	Primes       float64   `json:"primes"`
	Avances      float64   `json:"avances"`
	Retenues     float64   `json:"retenues"`
	DatePaiement time.Time `json:"datePaiement"`
	ModePaiement string    `json:"modePaiement"`
	Statut       string    `json:"statut"`
	Remarques    string    `json:"remarques"`
}

func (s *Service) EnregistrerSalaire(ctx context.Context, in SalaireInput) (*domain.Salaire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexEmploye(in.EmployeID) < 0 {
		return nil, domain.NotFound("Employé", in.EmployeID)
	}
	sal := domain.Salaire{
		ID:           uuid.NewString(),
		EmployeID:    in.EmployeID,
		Mois:         in.Mois,
		Annee:        in.Annee,
		SalaireBase:  in.SalaireBase,
		Primes:       in.Primes,
		Avances:      in.Avances,
		Retenues:     in.Retenues,
		SalaireNet:   in.SalaireBase + in.Primes - in.Avances - in.Retenues,
		DatePaiement: in.DatePaiement,
		ModePaiement: in.ModePaiement,
		Statut:       in.Statut,
		Remarques:    in.Remarques,
	}
	if sal.DatePaiement.IsZero() {
		sal.DatePaiement = s.now()
	}
	if sal.Statut == "" {
		sal.Statut = "paye"
	}
	s.data.Salaires = append(s.data.Salaires, sal)
	s.persist(ctx)
	return &sal, nil
}

// CalculerSalaire returns the net salary due for the period: monthly base
// plus zero bonus, minus the advances recorded for the employee. Unknown
// employees yield 0.
func (s *Service) CalculerSalaire(employeID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexEmploye(employeID)
	if i < 0 {
		return 0
	}
	total := s.data.Employes[i].SalaireMensuel
	for _, sal := range s.data.Salaires {
		if sal.EmployeID == employeID {
			total -= sal.Avances
		}
	}
	return total
}

// --- Congés ---

type CongeInput struct {
	EmployeID   string    `json:"employeId"`
	Type        string    `json:"type"`
	DateDebut   time.Time `json:"dateDebut"`
	DateFin     time.Time `json:"dateFin"`
	NombreJours int       `json:"nombreJours"`
	Motif       string    `json:"motif"`
}

func (s *Service) DemanderConge(ctx context.Context, in CongeInput) (*domain.Conge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexEmploye(in.EmployeID) < 0 {
		return nil, domain.NotFound("Employé", in.EmployeID)
	}
	cg := domain.Conge{
		ID:          uuid.NewString(),
		EmployeID:   in.EmployeID,
		Type:        in.Type,
		DateDebut:   in.DateDebut,
		DateFin:     in.DateFin,
		NombreJours: in.NombreJours,
		Statut:      domain.CongeDemande,
		Motif:       in.Motif,
	}
	s.data.Conges = append(s.data.Conges, cg)
	s.persist(ctx)
	return &cg, nil
}

// TraiterConge approves or refuses a pending leave request.
func (s *Service) TraiterConge(ctx context.Context, id, decision, approbateur string) (*domain.Conge, error) {
	if decision != domain.CongeApprouve && decision != domain.CongeRefuse {
		return nil, domain.Invalid("Décision invalide: approuve ou refuse attendu")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Conges {
		if s.data.Conges[i].ID == id {
			cg := &s.data.Conges[i]
			cg.Statut = decision
			cg.Approbateur = approbateur
			t := s.now()
			cg.DateApprobation = &t
			s.persist(ctx)
			return cg, nil
		}
	}
	return nil, domain.NotFound("Congé", id)
}

// --- Absences ---

type AbsenceInput struct {
	EmployeID string    `json:"employeId"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Duree     float64   `json:"duree"`
	Motif     string    `json:"motif"`
	Sanction  string    `json:"sanction"`
}

func (s *Service) EnregistrerAbsence(ctx context.Context, in AbsenceInput) (*domain.Absence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexEmploye(in.EmployeID) < 0 {
		return nil, domain.NotFound("Employé", in.EmployeID)
	}
	a := domain.Absence{
		ID:        uuid.NewString(),
		EmployeID: in.EmployeID,
		Date:      in.Date,
		Type:      in.Type,
		Duree:     in.Duree,
		Motif:     in.Motif,
		Sanction:  in.Sanction,
	}
	if a.Date.IsZero() {
		a.Date = s.now()
	}
	s.data.Absences = append(s.data.Absences, a)
	s.persist(ctx)
	return &a, nil
}

// --- Formations ---

type FormationInput struct {
	EmployeID  string    `json:"employeId"`
	Nom        string    `json:"nom"`
	Organisme  string    `json:"organisme"`
	DateDebut  time.Time `json:"dateDebut"`
	DateFin    time.Time `json:"dateFin"`
	Certificat string    `json:"certificat"`
}

func (s *Service) AjouterFormation(ctx context.Context, in FormationInput) (*domain.Formation, error) {
	if in.Nom == "" {
		return nil, domain.Invalid("Nom de la formation requis")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f := domain.Formation{
		ID:         uuid.NewString(),
		EmployeID:  in.EmployeID,
		Nom:        in.Nom,
		Organisme:  in.Organisme,
		DateDebut:  in.DateDebut,
		DateFin:    in.DateFin,
		Certificat: in.Certificat,
	}
	s.data.Formations = append(s.data.Formations, f)
	s.persist(ctx)
	return &f, nil
}

// --- Lectures ---

func (s *Service) Employes() []domain.Employe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Employe(nil), s.data.Employes...)
}

func (s *Service) Salaires() []domain.Salaire {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Salaire(nil), s.data.Salaires...)
}

func (s *Service) Conges() []domain.Conge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Conge(nil), s.data.Conges...)
}

func (s *Service) Absences() []domain.Absence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Absence(nil), s.data.Absences...)
}

func (s *Service) Formations() []domain.Formation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Formation(nil), s.data.Formations...)
}

// EmployesParDepartement counts employees grouped by department.
func (s *Service) EmployesParDepartement() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for _, e := range s.data.Employes {
		out[e.Departement]++
	}
	return out
}

// Statistiques is the HR dashboard summary.
type Statistiques struct {
	EmployesActifs int     `json:"employesActifs"`
	EnConge        int     `json:"enConge"`
	MasseSalariale float64 `json:"masseSalariale"`
	AvancesMois    float64 `json:"avancesMois"`
}

// Statistiques recomputes the summary. EnConge counts employees with an
// approved leave spanning today.
func (s *Service) Statistiques() Statistiques {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Statistiques{}
	for _, e := range s.data.Employes {
		if e.Statut == domain.EmployeActif {
			st.EmployesActifs++
			st.MasseSalariale += e.SalaireMensuel
		}
	}
	now := s.now()
	enConge := map[string]struct{}{}
	for _, cg := range s.data.Conges {
		if cg.Statut == domain.CongeApprouve && !now.Before(cg.DateDebut) && !now.After(cg.DateFin) {
			enConge[cg.EmployeID] = struct{}{}
		}
	}
	st.EnConge = len(enConge)
	for _, sal := range s.data.Salaires {
		if domain.MemeMois(sal.DatePaiement, now) {
			st.AvancesMois += sal.Avances
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

	next := domain.NewPersonnelData()
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

	next := domain.NewPersonnelData()
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
	next := domain.NewPersonnelData()
	s.store.Load(ctx, &next)
	s.data = next
}

func (s *Service) indexEmploye(id string) int {
	for i := range s.data.Employes {
		if s.data.Employes[i].ID == id {
			return i
		}
	}
	return -1
}
