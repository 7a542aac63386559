package btp

import (
	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// --- Chantiers ---

func (h *Handlers) CreateChantier(c *fiber.Ctx) error {
	var in ChantierInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	ch, err := h.Service.AjouterChantier(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Chantier créé", ch, nil)
}

func (h *Handlers) ListChantiers(c *fiber.Ctx) error {
	return response.Success(c, "Chantiers", h.Service.Chantiers(), nil)
}

func (h *Handlers) UpdateChantier(c *fiber.Ctx) error {
	var up ChantierUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	ch, err := h.Service.ModifierChantier(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Chantier modifié", ch, nil)
}

func (h *Handlers) DeleteChantier(c *fiber.Ctx) error {
	if err := h.Service.SupprimerChantier(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Chantier supprimé", nil, nil)
}

func (h *Handlers) AssignOuvrier(c *fiber.Ctx) error {
	var body struct {
		OuvrierID string `json:"ouvrierId"`
	}
	if err := c.BodyParser(&body); err != nil || body.OuvrierID == "" {
		return response.Error(c, "ouvrierId est requis", fiber.StatusBadRequest, nil)
	}
	ch, err := h.Service.AssignerOuvrier(c.Context(), c.Params("id"), body.OuvrierID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Ouvrier assigné", ch, nil)
}

func (h *Handlers) ListChantiersEnRetard(c *fiber.Ctx) error {
	return response.Success(c, "Chantiers en retard", h.Service.ChantiersEnRetard(), nil)
}

// --- Matériaux ---

func (h *Handlers) CreateMateriau(c *fiber.Ctx) error {
	var in MateriauInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	m, err := h.Service.AjouterMateriau(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Matériau enregistré", m, nil)
}

func (h *Handlers) ListMateriaux(c *fiber.Ctx) error {
	return response.Success(c, "Matériaux", h.Service.Materiaux(), nil)
}

// --- Dépenses ---

func (h *Handlers) CreateDepense(c *fiber.Ctx) error {
	var in DepenseInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.ChantierID == "" {
		return response.Error(c, "chantierId est requis", fiber.StatusBadRequest, nil)
	}
	d, err := h.Service.AjouterDepense(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Dépense enregistrée", d, nil)
}

func (h *Handlers) ListDepenses(c *fiber.Ctx) error {
	return response.Success(c, "Dépenses", h.Service.Depenses(), nil)
}

func (h *Handlers) ListDepensesChantier(c *fiber.Ctx) error {
	return response.Success(c, "Dépenses du chantier", h.Service.DepensesChantier(c.Params("id")), nil)
}

// --- Statistiques ---

func (h *Handlers) GetStatistiques(c *fiber.Ctx) error {
	return response.Success(c, "Statistiques BTP", h.Service.Statistiques(), nil)
}
