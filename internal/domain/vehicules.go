package domain

import "time"

// Vehicule statuses.
const (
	VehiculeDisponible  = "disponible"
	VehiculeLoue        = "loue"
	VehiculeEnVente     = "en_vente"
	VehiculeMaintenance = "maintenance"
	VehiculeVendu       = "vendu"
)

// Vehicule is a vehicle entrusted to the agency for rental or sale.
type Vehicule struct {
	ID                     string               `json:"id"`
	ProprietaireVehiculeID string               `json:"proprietaireVehiculeId"`
	Marque                 string               `json:"marque"`
	Modele                 string               `json:"modele"`
	Annee                  int                  `json:"annee"`
	Couleur                string               `json:"couleur"`
	Immatriculation        string               `json:"immatriculation"`
	NumeroSerie            string               `json:"numeroSerie"`
	TypeVehicule           string               `json:"typeVehicule"` // berline | suv | pickup | moto | camion
	PrixProprietaire       float64              `json:"prixProprietaire"`
	PrixFadem              float64              `json:"prixFadem"`
	Commission             float64              `json:"commission"`
	Kilometrage            float64              `json:"kilometrage"`
	Carburant              string               `json:"carburant"`
	Statut                 string               `json:"statut"`
	DateEnregistrement     time.Time            `json:"dateEnregistrement"`
	ContratsLocation       []string             `json:"contratsLocation"`
	HistoriqueLocation     []HistoriqueLocation `json:"historiqueLocation"`
}

// ProprietaireVehicule mirrors Proprietaire for the vehicle fleet.
type ProprietaireVehicule struct {
	ID                string    `json:"id"`
	Nom               string    `json:"nom"`
	Prenom            string    `json:"prenom"`
	Telephone         string    `json:"telephone"`
	Email             string    `json:"email,omitempty"`
	Adresse           string    `json:"adresse"`
	CNI               string    `json:"cni"`
	PermisConduire    string    `json:"permisConduire,omitempty"`
	DateCreation      time.Time `json:"dateCreation"`
	VehiculesConfies  []string  `json:"vehiculesConfies"`
	CommissionsRecues float64   `json:"commissionsRecues"`
}

// ContratVehicule statuses.
const (
	ContratVehiculeActif   = "actif"
	ContratVehiculeTermine = "termine"
	ContratVehiculeAnnule  = "annule"
)

// ContratVehicule is a rental (or sale) contract on one Vehicule.
type ContratVehicule struct {
	ID               string     `json:"id"`
	VehiculeID       string     `json:"vehiculeId"`
	ClientNom        string     `json:"clientNom"`
	ClientTelephone  string     `json:"clientTelephone"`
	ClientCNI        string     `json:"clientCNI"`
	Type             string     `json:"type"` // location | vente
	AvecChauffeur    bool       `json:"avecChauffeur"`
	Montant          float64    `json:"montant"`
	Caution          float64    `json:"caution,omitempty"`
	DateDebut        time.Time  `json:"dateDebut"`
	DateFin          *time.Time `json:"dateFin,omitempty"`
	Duree            int        `json:"duree,omitempty"` // days
	KilometrageDebut float64    `json:"kilometrageDebut"`
	KilometrageFin   float64    `json:"kilometrageFin,omitempty"`
	Statut           string     `json:"statut"`
	Paiements        []string   `json:"paiements"`
}

// HistoriqueLocation is one finished rental, appended on termination.
type HistoriqueLocation struct {
	DateDebut   time.Time `json:"dateDebut"`
	DateFin     time.Time `json:"dateFin"`
	Client      string    `json:"client"`
	Montant     float64   `json:"montant"`
	Kilometrage float64   `json:"kilometrage"`
}

// VehiculesData is the vehicle module's full persisted record set.
type VehiculesData struct {
	Vehicules     []Vehicule             `json:"vehicules"`
	Proprietaires []ProprietaireVehicule `json:"proprietaires"`
	Contrats      []ContratVehicule      `json:"contrats"`
	Historique    []HistoriqueLocation   `json:"historique"`
}

// NewVehiculesData returns the initial (empty) record set.
func NewVehiculesData() VehiculesData {
	return VehiculesData{
		Vehicules:     []Vehicule{},
		Proprietaires: []ProprietaireVehicule{},
		Contrats:      []ContratVehicule{},
		Historique:    []HistoriqueLocation{},
	}
}
