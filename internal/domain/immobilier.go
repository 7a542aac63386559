package domain

import "time"

// Proprietaire is a real-estate owner who entrusts assets to the agency.
type Proprietaire struct {
	ID                string    `json:"id"`
	Nom               string    `json:"nom"`
	Prenom            string    `json:"prenom"`
	Telephone         string    `json:"telephone"`
	Email             string    `json:"email,omitempty"`
	Adresse           string    `json:"adresse"`
	CNI               string    `json:"cni"`
	DateCreation      time.Time `json:"dateCreation"`
	BiensConfies      []string  `json:"biensConfies"`
	CommissionsRecues float64   `json:"commissionsRecues"`
}

// Bien statuses.
const (
	BienDisponible  = "disponible"
	BienLoue        = "loue"
	BienMaintenance = "maintenance"
	BienReserve     = "reserve"
)

// Bien is a property managed on behalf of a Proprietaire.
// Commission is always PrixFadem - PrixProprietaire.
type Bien struct {
	ID                 string    `json:"id"`
	ProprietaireID     string    `json:"proprietaireId"`
	Type               string    `json:"type"` // appartement | villa | bureau | commerce | terrain
	Adresse            string    `json:"adresse"`
	Quartier           string    `json:"quartier"`
	Superficie         float64   `json:"superficie,omitempty"`
	Chambres           int       `json:"chambres,omitempty"`
	SallesBain         int       `json:"sallesBain,omitempty"`
	PrixProprietaire   float64   `json:"prixProprietaire"`
	PrixFadem          float64   `json:"prixFadem"`
	Commission         float64   `json:"commission"`
	Description        string    `json:"description,omitempty"`
	DateEnregistrement time.Time `json:"dateEnregistrement"`
	Statut             string    `json:"statut"`
	ContratActuel      string    `json:"contratActuel,omitempty"`
}

// Locataire is a tenant. ContratsActifs mirrors the contracts currently
// in force that reference it.
type Locataire struct {
	ID                    string    `json:"id"`
	Nom                   string    `json:"nom"`
	Prenom                string    `json:"prenom"`
	Telephone             string    `json:"telephone"`
	Email                 string    `json:"email,omitempty"`
	Adresse               string    `json:"adresse"`
	Profession            string    `json:"profession"`
	Entreprise            string    `json:"entreprise,omitempty"`
	CNI                   string    `json:"cni"`
	DateNaissance         time.Time `json:"dateNaissance"`
	SituationMatrimoniale string    `json:"situationMatrimoniale"`
	PersonnesACharge      int       `json:"personnesACharge"`
	Revenus               float64   `json:"revenus,omitempty"`
	DateCreation          time.Time `json:"dateCreation"`
	ContratsActifs        []string  `json:"contratsActifs"`
}

// Contrat statuses.
const (
	ContratActif    = "actif"
	ContratExpire   = "expire"
	ContratResilie  = "resilié"
	ContratSuspendu = "suspendu"
)

// Contrat is a lease (or sale) binding a Bien, a Locataire and a Proprietaire.
type Contrat struct {
	ID               string     `json:"id"`
	BienID           string     `json:"bienId"`
	LocataireID      string     `json:"locataireId"`
	ProprietaireID   string     `json:"proprietaireId"`
	Type             string     `json:"type"` // location | vente
	MontantMensuel   float64    `json:"montantMensuel"`
	Caution          float64    `json:"caution"`
	Avance           float64    `json:"avance,omitempty"`
	DateDebut        time.Time  `json:"dateDebut"`
	DateFin          *time.Time `json:"dateFin,omitempty"`
	Duree            int        `json:"duree"` // months
	DateSignature    time.Time  `json:"dateSignature"`
	Statut           string     `json:"statut"`
	MotifResiliation string     `json:"motifResiliation,omitempty"`
	Paiements        []string   `json:"paiements"`
	Factures         []string   `json:"factures"`
}

// Paiement statuses.
const (
	PaiementPaye    = "paye"
	PaiementRetard  = "en_retard"
	PaiementPartiel = "partiel"
	PaiementAnnule  = "annule"
)

// Paiement is a rent payment recorded against a Contrat.
type Paiement struct {
	ID                   string    `json:"id"`
	ContratID            string    `json:"contratId"`
	Montant              float64   `json:"montant"`
	DatePaiement         time.Time `json:"datePaiement"`
	DateEcheance         time.Time `json:"dateEcheance"`
	ModePaiement         string    `json:"modePaiement"` // tmoney | moovmoney | especes | virement | cheque
	ReferenceTransaction string    `json:"referenceTransaction,omitempty"`
	Statut               string    `json:"statut"`
	Penalites            float64   `json:"penalites,omitempty"`
	Remarques            string    `json:"remarques,omitempty"`
	Recu                 string    `json:"recu"`
}

// Facture is an invoice kept in the dataset for persisted-layout parity.
type Facture struct {
	ID           string    `json:"id"`
	Numero       string    `json:"numero"`
	ContratID    string    `json:"contratId,omitempty"`
	Type         string    `json:"type"`
	MontantHT    float64   `json:"montantHT"`
	MontantTTC   float64   `json:"montantTTC"`
	DateEmission time.Time `json:"dateEmission"`
	DateEcheance time.Time `json:"dateEcheance"`
	Statut       string    `json:"statut"`
}

// ImmobilierData is the real-estate module's full persisted record set.
type ImmobilierData struct {
	Proprietaires []Proprietaire `json:"proprietaires"`
	Biens         []Bien         `json:"biens"`
	Locataires    []Locataire    `json:"locataires"`
	Contrats      []Contrat      `json:"contrats"`
	Paiements     []Paiement     `json:"paiements"`
	Factures      []Facture      `json:"factures"`
}

// NewImmobilierData returns the initial (empty) record set.
func NewImmobilierData() ImmobilierData {
	return ImmobilierData{
		Proprietaires: []Proprietaire{},
		Biens:         []Bien{},
		Locataires:    []Locataire{},
		Contrats:      []Contrat{},
		Paiements:     []Paiement{},
		Factures:      []Facture{},
	}
}

// CalculerCommission is the agency margin on a brokered asset.
func CalculerCommission(prixFadem, prixProprietaire float64) float64 {
	return prixFadem - prixProprietaire
}
