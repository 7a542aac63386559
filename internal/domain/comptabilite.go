package domain

import "time"

// Transaction types and statuses.
const (
	TransactionRecette = "recette"
	TransactionDepense = "depense"

	TransactionValidee   = "validee"
	TransactionEnAttente = "en_attente"
	TransactionAnnulee   = "annulee"
)

// Compte statuses.
const (
	CompteActif   = "actif"
	CompteInactif = "inactif"
	CompteFerme   = "ferme"
)

// Compte is a bank/cash account. SoldeActuel is only ever adjusted
// incrementally by transaction postings; editing SoldeInitial does not
// recompute it.
type Compte struct {
	ID            string    `json:"id"`
	Nom           string    `json:"nom"`
	Type          string    `json:"type"` // banque | especes | mobile_money | autre
	Numero        string    `json:"numero,omitempty"`
	Banque        string    `json:"banque,omitempty"`
	SoldeInitial  float64   `json:"soldeInitial"`
	SoldeActuel   float64   `json:"soldeActuel"`
	Devise        string    `json:"devise"`
	DateOuverture time.Time `json:"dateOuverture"`
	Statut        string    `json:"statut"`
	Description   string    `json:"description,omitempty"`
}

// TransactionComptable is one accounting entry posted against a Compte.
type TransactionComptable struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Type               string    `json:"type"` // recette | depense
	Montant            float64   `json:"montant"`
	CategorieID        string    `json:"categorieId"`
	Module             string    `json:"module"` // immobilier | btp | vehicules | personnel | autre
	CompteID           string    `json:"compteId"`
	Reference          string    `json:"reference,omitempty"`
	Description        string    `json:"description"`
	ModePaiement       string    `json:"modePaiement"`
	NumeroTransaction  string    `json:"numeroTransaction,omitempty"`
	Statut             string    `json:"statut"`
	PieceJustificative string    `json:"pieceJustificative,omitempty"`
	Remarques          string    `json:"remarques,omitempty"`
}

// CategorieTransaction is a revenue or expense category.
type CategorieTransaction struct {
	ID          string `json:"id"`
	Nom         string `json:"nom"`
	Type        string `json:"type"` // recette | depense
	Couleur     string `json:"couleur"`
	Description string `json:"description,omitempty"`
}

// BilanCompte is the per-account mini balance sheet for the current month.
// SoldeFin is the all-time running balance, not a month-bounded figure.
type BilanCompte struct {
	CompteID           string  `json:"compteId"`
	NomCompte          string  `json:"nomCompte"`
	SoldeDebut         float64 `json:"soldeDebut"`
	TotalRecettes      float64 `json:"totalRecettes"`
	TotalDepenses      float64 `json:"totalDepenses"`
	SoldeFin           float64 `json:"soldeFin"`
	NombreTransactions int     `json:"nombreTransactions"`
}

// ComptabiliteData is the accounting module's full persisted record set.
type ComptabiliteData struct {
	Transactions []TransactionComptable `json:"transactions"`
	Comptes      []Compte               `json:"comptes"`
	Categories   []CategorieTransaction `json:"categories"`
}

// CategoriesDefaut are the built-in revenue/expense categories seeded on
// first load.
func CategoriesDefaut() []CategorieTransaction {
	return []CategorieTransaction{
		{ID: "rec-immobilier", Nom: "Location Immobilier", Type: TransactionRecette, Couleur: "#22c55e"},
		{ID: "rec-vente-immo", Nom: "Vente Immobilier", Type: TransactionRecette, Couleur: "#16a34a"},
		{ID: "rec-btp", Nom: "Travaux BTP", Type: TransactionRecette, Couleur: "#eab308"},
		{ID: "rec-vehicules", Nom: "Location Véhicules", Type: TransactionRecette, Couleur: "#3b82f6"},
		{ID: "rec-vente-vehicules", Nom: "Vente Véhicules", Type: TransactionRecette, Couleur: "#1d4ed8"},
		{ID: "rec-autre", Nom: "Autres Recettes", Type: TransactionRecette, Couleur: "#06b6d4"},
		{ID: "dep-salaires", Nom: "Salaires & Charges", Type: TransactionDepense, Couleur: "#dc2626"},
		{ID: "dep-materiaux", Nom: "Matériaux BTP", Type: TransactionDepense, Couleur: "#ea580c"},
		{ID: "dep-carburant", Nom: "Carburant & Transport", Type: TransactionDepense, Couleur: "#d97706"},
		{ID: "dep-maintenance", Nom: "Maintenance & Réparations", Type: TransactionDepense, Couleur: "#7c2d12"},
		{ID: "dep-bureaux", Nom: "Frais de Bureau", Type: TransactionDepense, Couleur: "#991b1b"},
		{ID: "dep-marketing", Nom: "Marketing & Publicité", Type: TransactionDepense, Couleur: "#be123c"},
		{ID: "dep-juridique", Nom: "Frais Juridiques", Type: TransactionDepense, Couleur: "#9f1239"},
		{ID: "dep-autre", Nom: "Autres Dépenses", Type: TransactionDepense, Couleur: "#7f1d1d"},
	}
}

// NewComptabiliteData returns the initial record set with default categories.
func NewComptabiliteData() ComptabiliteData {
	return ComptabiliteData{
		Transactions: []TransactionComptable{},
		Comptes:      []Compte{},
		Categories:   CategoriesDefaut(),
	}
}
