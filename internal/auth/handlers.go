package auth

import (
	"strings"

	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// BearerToken extracts the opaque token from the Authorization header.
func BearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func (h *Handlers) Register(c *fiber.Ctx) error {
	var in UtilisateurInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.CreerUtilisateur(c.Context(), in)
	if err != nil {
		if err == ErrIdentifiantsRequis {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.DomainError(c, err)
	}
	u.MotDePasseHash = ""
	return response.SuccessCreated(c, "Utilisateur créé", u, nil)
}

func (h *Handlers) Login(c *fiber.Ctx) error {
	var in LoginInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	token, u, err := h.Service.Login(c.Context(), in)
	if err != nil {
		switch err {
		case ErrIdentifiantsRequis:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrUtilisateurInconnu, ErrMotDePasseIncorrect:
			return response.Unauthorized(c, err.Error())
		case ErrCompteInactif:
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		}
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Connexion réussie", fiber.Map{
		"token": token,
		"utilisateur": fiber.Map{
			"id":           u.ID,
			"nom":          u.Nom,
			"modulesAcces": u.ModulesAcces,
		},
	}, nil)
}

func (h *Handlers) Me(c *fiber.Ctx) error {
	session, err := h.Service.VerifierToken(c.Context(), BearerToken(c))
	if err != nil {
		return response.Unauthorized(c, err.Error())
	}
	return response.Success(c, "Session active", session, nil)
}

func (h *Handlers) Logout(c *fiber.Ctx) error {
	if err := h.Service.Logout(c.Context(), BearerToken(c)); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Déconnexion réussie", nil, nil)
}

func (h *Handlers) ListUtilisateurs(c *fiber.Ctx) error {
	return response.Success(c, "Utilisateurs", h.Service.Utilisateurs(), nil)
}
