package comptabilite

import (
	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// --- Comptes ---

func (h *Handlers) CreateCompte(c *fiber.Ctx) error {
	var in CompteInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	cp, err := h.Service.AjouterCompte(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Compte créé", cp, nil)
}

func (h *Handlers) ListComptes(c *fiber.Ctx) error {
	return response.Success(c, "Comptes", h.Service.Comptes(), nil)
}

func (h *Handlers) UpdateCompte(c *fiber.Ctx) error {
	var up CompteUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	cp, err := h.Service.ModifierCompte(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Compte modifié", cp, nil)
}

func (h *Handlers) DeleteCompte(c *fiber.Ctx) error {
	if err := h.Service.SupprimerCompte(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Compte supprimé", nil, nil)
}

// --- Transactions ---

func (h *Handlers) CreateTransaction(c *fiber.Ctx) error {
	var in TransactionInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.CompteID == "" {
		return response.Error(c, "compteId est requis", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.AjouterTransaction(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Transaction enregistrée", t, nil)
}

func (h *Handlers) ListTransactions(c *fiber.Ctx) error {
	return response.Success(c, "Transactions", h.Service.Transactions(), nil)
}

func (h *Handlers) UpdateTransaction(c *fiber.Ctx) error {
	var up TransactionUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.ModifierTransaction(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Transaction modifiée", t, nil)
}

func (h *Handlers) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.Service.SupprimerTransaction(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Transaction supprimée", nil, nil)
}

// --- Catégories ---

func (h *Handlers) CreateCategorie(c *fiber.Ctx) error {
	var in CategorieInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	cat, err := h.Service.AjouterCategorie(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Catégorie créée", cat, nil)
}

func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	return response.Success(c, "Catégories", h.Service.Categories(), nil)
}

// --- Synthèses ---

func (h *Handlers) GetStatistiques(c *fiber.Ctx) error {
	return response.Success(c, "Statistiques comptables", h.Service.Statistiques(), nil)
}

func (h *Handlers) GetBilans(c *fiber.Ctx) error {
	return response.Success(c, "Bilans des comptes", h.Service.BilansComptes(), nil)
}

func (h *Handlers) GetRevenusParModule(c *fiber.Ctx) error {
	return response.Success(c, "Revenus par module", h.Service.RevenusParModule(), nil)
}

func (h *Handlers) GetDepensesParCategorie(c *fiber.Ctx) error {
	return response.Success(c, "Dépenses par catégorie", h.Service.DepensesParCategorie(), nil)
}
