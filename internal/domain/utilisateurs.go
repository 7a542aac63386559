package domain

import "time"

// UtilisateurModule statuses.
const (
	UtilisateurActif    = "actif"
	UtilisateurInactif  = "inactif"
	UtilisateurSuspendu = "suspendu"
)

// UtilisateurModule is a back-office user with per-module access rights.
// MotDePasseHash holds a bcrypt hash, never the clear password.
type UtilisateurModule struct {
	ID                string              `json:"id"`
	Nom               string              `json:"nom"`
	Email             string              `json:"email,omitempty"`
	MotDePasseHash    string              `json:"motDePasseHash"`
	ModulesAcces      []string            `json:"modulesAcces"`
	Permissions       map[string][]string `json:"permissions,omitempty"`
	Statut            string              `json:"statut"`
	DerniereConnexion *time.Time          `json:"derniereConnexion,omitempty"`
	DateCreation      time.Time           `json:"dateCreation"`
}

// UtilisateursData is the user module's full persisted record set.
type UtilisateursData struct {
	Utilisateurs []UtilisateurModule `json:"utilisateurs"`
}

// NewUtilisateursData returns the initial (empty) record set.
func NewUtilisateursData() UtilisateursData {
	return UtilisateursData{Utilisateurs: []UtilisateurModule{}}
}
