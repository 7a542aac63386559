package vehicules

import (
	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// --- Propriétaires ---

func (h *Handlers) CreateProprietaire(c *fiber.Ctx) error {
	var in ProprietaireInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.AjouterProprietaire(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Propriétaire créé", p, nil)
}

func (h *Handlers) ListProprietaires(c *fiber.Ctx) error {
	return response.Success(c, "Propriétaires", h.Service.Proprietaires(), nil)
}

func (h *Handlers) UpdateProprietaire(c *fiber.Ctx) error {
	var up ProprietaireUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.ModifierProprietaire(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Propriétaire modifié", p, nil)
}

func (h *Handlers) DeleteProprietaire(c *fiber.Ctx) error {
	if err := h.Service.SupprimerProprietaire(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Propriétaire supprimé", nil, nil)
}

// --- Véhicules ---

func (h *Handlers) CreateVehicule(c *fiber.Ctx) error {
	var in VehiculeInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.ProprietaireVehiculeID == "" {
		return response.Error(c, "proprietaireVehiculeId est requis", fiber.StatusBadRequest, nil)
	}
	v, err := h.Service.AjouterVehicule(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Véhicule enregistré", v, nil)
}

func (h *Handlers) ListVehicules(c *fiber.Ctx) error {
	return response.Success(c, "Véhicules", h.Service.Vehicules(), nil)
}

func (h *Handlers) ListVehiculesDisponibles(c *fiber.Ctx) error {
	return response.Success(c, "Véhicules disponibles", h.Service.VehiculesDisponibles(), nil)
}

func (h *Handlers) UpdateVehicule(c *fiber.Ctx) error {
	var up VehiculeUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	v, err := h.Service.ModifierVehicule(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Véhicule modifié", v, nil)
}

func (h *Handlers) DeleteVehicule(c *fiber.Ctx) error {
	if err := h.Service.SupprimerVehicule(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Véhicule supprimé", nil, nil)
}

// --- Contrats ---

func (h *Handlers) CreateContrat(c *fiber.Ctx) error {
	var in ContratInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.VehiculeID == "" {
		return response.Error(c, "vehiculeId est requis", fiber.StatusBadRequest, nil)
	}
	ct, err := h.Service.CreerContrat(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Contrat créé", ct, nil)
}

func (h *Handlers) ListContrats(c *fiber.Ctx) error {
	return response.Success(c, "Contrats", h.Service.Contrats(), nil)
}

func (h *Handlers) ListContratsActifs(c *fiber.Ctx) error {
	return response.Success(c, "Contrats actifs", h.Service.ContratsActifs(), nil)
}

func (h *Handlers) UpdateContrat(c *fiber.Ctx) error {
	var up ContratUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	ct, err := h.Service.ModifierContrat(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Contrat modifié", ct, nil)
}

func (h *Handlers) TerminateLocation(c *fiber.Ctx) error {
	ct, err := h.Service.TerminerLocation(c.Context(), c.Params("id"))
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Location terminée", ct, nil)
}

// --- Historique & statistiques ---

func (h *Handlers) ListHistorique(c *fiber.Ctx) error {
	return response.Success(c, "Historique des locations", h.Service.Historique(), nil)
}

func (h *Handlers) GetStatistiques(c *fiber.Ctx) error {
	return response.Success(c, "Statistiques véhicules", h.Service.Statistiques(), nil)
}
