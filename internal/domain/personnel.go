package domain

import "time"

// Employe statuses.
const (
	EmployeActif       = "actif"
	EmployeConge       = "conge"
	EmployeSuspendu    = "suspendu"
	EmployeDemissionne = "demissionne"
)

// Employe is a company employee. No cross-module deletion guard references it.
type Employe struct {
	ID             string    `json:"id"`
	Nom            string    `json:"nom"`
	Prenom         string    `json:"prenom"`
	Telephone      string    `json:"telephone"`
	Email          string    `json:"email,omitempty"`
	Adresse        string    `json:"adresse"`
	CNI            string    `json:"cni"`
	DateNaissance  time.Time `json:"dateNaissance"`
	DateEmbauche   time.Time `json:"dateEmbauche"`
	Poste          string    `json:"poste"`
	Departement    string    `json:"departement"` // immobilier | btp | vehicules | comptabilite | administration
	SalaireMensuel float64   `json:"salaireMensuel"`
	TypeContrat    string    `json:"typeContrat"` // cdi | cdd | stage | freelance
	Statut         string    `json:"statut"`
	Competences    []string  `json:"competences,omitempty"`
}

// Salaire is one salary record for an (employe, mois, annee).
type Salaire struct {
	ID           string    `json:"id"`
	EmployeID    string    `json:"employeId"`
	Mois         int       `json:"mois"`
	Annee        int       `json:"annee"`
	SalaireBase  float64   `json:"salaireBase"`
	Primes       float64   `json:"primes,omitempty"`
	Avances      float64   `json:"avances,omitempty"`
	Retenues     float64   `json:"retenues,omitempty"`
	SalaireNet   float64   `json:"salaireNet"`
	DatePaiement time.Time `json:"datePaiement"`
	ModePaiement string    `json:"modePaiement"`
	Statut       string    `json:"statut"` // paye | en_attente | annule
	Remarques    string    `json:"remarques,omitempty"`
}

// Conge statuses.
const (
	CongeDemande  = "demande"
	CongeApprouve = "approuve"
	CongeRefuse   = "refuse"
	CongeEnCours  = "en_cours"
)

// Conge is a leave request.
type Conge struct {
	ID              string     `json:"id"`
	EmployeID       string     `json:"employeId"`
	Type            string     `json:"type"` // annuel | maladie | maternite | sans_solde | autre
	DateDebut       time.Time  `json:"dateDebut"`
	DateFin         time.Time  `json:"dateFin"`
	NombreJours     int        `json:"nombreJours"`
	Statut          string     `json:"statut"`
	Motif           string     `json:"motif,omitempty"`
	Approbateur     string     `json:"approbateur,omitempty"`
	DateApprobation *time.Time `json:"dateApprobation,omitempty"`
}

// Absence is a recorded absence or late arrival.
type Absence struct {
	ID        string    `json:"id"`
	EmployeID string    `json:"employeId"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"` // retard | absence_non_justifiee | absence_justifiee
	Duree     float64   `json:"duree"` // hours
	Motif     string    `json:"motif,omitempty"`
	Sanction  string    `json:"sanction,omitempty"`
}

// Formation is a training course attended by an employee.
type Formation struct {
	ID         string    `json:"id"`
	EmployeID  string    `json:"employeId,omitempty"`
	Nom        string    `json:"nom"`
	Organisme  string    `json:"organisme"`
	DateDebut  time.Time `json:"dateDebut"`
	DateFin    time.Time `json:"dateFin"`
	Certificat string    `json:"certificat,omitempty"`
}

// PersonnelData is the HR module's full persisted record set.
type PersonnelData struct {
	Employes   []Employe   `json:"employes"`
	Salaires   []Salaire   `json:"salaires"`
	Conges     []Conge     `json:"conges"`
	Absences   []Absence   `json:"absences"`
	Formations []Formation `json:"formations"`
}

// NewPersonnelData returns the initial (empty) record set.
func NewPersonnelData() PersonnelData {
	return PersonnelData{
		Employes:   []Employe{},
		Salaires:   []Salaire{},
		Conges:     []Conge{},
		Absences:   []Absence{},
		Formations: []Formation{},
	}
}
