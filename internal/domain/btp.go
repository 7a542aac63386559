package domain

import "time"

// Chantier statuses.
const (
	ChantierPlanifie = "planifie"
	ChantierEnCours  = "en_cours"
	ChantierSuspendu = "suspendu"
	ChantierTermine  = "termine"
	ChantierAnnule   = "annule"
)

// Chantier is a construction worksite.
type Chantier struct {
	ID              string     `json:"id"`
	Nom             string     `json:"nom"`
	Client          string     `json:"client"`
	Adresse         string     `json:"adresse"`
	TypeChantier    string     `json:"typeChantier"` // construction | renovation | demolition | amenagement
	DateDebut       time.Time  `json:"dateDebut"`
	DateFin         *time.Time `json:"dateFin,omitempty"`
	DatePrevue      time.Time  `json:"datePrevue"`
	BudgetInitial   float64    `json:"budgetInitial"`
	BudgetActuel    float64    `json:"budgetActuel"`
	DepensesTotales float64    `json:"depensesTotales"`
	Avancement      float64    `json:"avancement"` // percent
	Statut          string     `json:"statut"`
	Responsable     string     `json:"responsable"`
	EquipeAssignee  []string   `json:"equipeAssignee"`
	Description     string     `json:"description,omitempty"`
}

// Materiau is a purchased construction material.
type Materiau struct {
	ID           string    `json:"id"`
	Nom          string    `json:"nom"`
	Quantite     float64   `json:"quantite"`
	Unite        string    `json:"unite"`
	PrixUnitaire float64   `json:"prixUnitaire"`
	PrixTotal    float64   `json:"prixTotal"`
	Fournisseur  string    `json:"fournisseur,omitempty"`
	DateAchat    time.Time `json:"dateAchat"`
}

// DepenseChantier is an expense booked against a worksite.
type DepenseChantier struct {
	ID          string    `json:"id"`
	ChantierID  string    `json:"chantierId"`
	Designation string    `json:"designation"`
	Montant     float64   `json:"montant"`
	Date        time.Time `json:"date"`
	Categorie   string    `json:"categorie"` // materiau | main_oeuvre | transport | equipement | autre
	Facture     string    `json:"facture,omitempty"`
	Remarques   string    `json:"remarques,omitempty"`
}

// BTPData is the construction module's full persisted record set.
type BTPData struct {
	Chantiers []Chantier        `json:"chantiers"`
	Materiaux []Materiau        `json:"materiaux"`
	Depenses  []DepenseChantier `json:"depenses"`
}

// NewBTPData returns the initial (empty) record set.
func NewBTPData() BTPData {
	return BTPData{
		Chantiers: []Chantier{},
		Materiaux: []Materiau{},
		Depenses:  []DepenseChantier{},
	}
}
