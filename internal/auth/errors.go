package auth

import "errors"

var (
	ErrIdentifiantsRequis  = errors.New("Nom d'utilisateur et mot de passe requis")
	ErrUtilisateurInconnu  = errors.New("Utilisateur inconnu")
	ErrMotDePasseIncorrect = errors.New("Mot de passe incorrect")
	ErrCompteInactif       = errors.New("Compte inactif ou suspendu")
	ErrNonAuthentifie      = errors.New("Non authentifié")
	ErrSessionExpiree      = errors.New("Session expirée")
)
