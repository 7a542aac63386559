package immobilier

import (
	"strconv"

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

// --- Biens ---

func (h *Handlers) CreateBien(c *fiber.Ctx) error {
	var in BienInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.ProprietaireID == "" {
		return response.Error(c, "proprietaireId est requis", fiber.StatusBadRequest, nil)
	}
	b, err := h.Service.AjouterBien(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Bien enregistré", b, nil)
}

func (h *Handlers) ListBiens(c *fiber.Ctx) error {
	return response.Success(c, "Biens", h.Service.Biens(), nil)
}

func (h *Handlers) UpdateBien(c *fiber.Ctx) error {
	var up BienUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	b, err := h.Service.ModifierBien(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Bien modifié", b, nil)
}

func (h *Handlers) DeleteBien(c *fiber.Ctx) error {
	if err := h.Service.SupprimerBien(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Bien supprimé", nil, nil)
}

// --- Locataires ---

func (h *Handlers) CreateLocataire(c *fiber.Ctx) error {
	var in LocataireInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	l, err := h.Service.AjouterLocataire(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Locataire créé", l, nil)
}

func (h *Handlers) ListLocataires(c *fiber.Ctx) error {
	return response.Success(c, "Locataires", h.Service.Locataires(), nil)
}

func (h *Handlers) UpdateLocataire(c *fiber.Ctx) error {
	var up LocataireUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	l, err := h.Service.ModifierLocataire(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Locataire modifié", l, nil)
}

func (h *Handlers) DeleteLocataire(c *fiber.Ctx) error {
	if err := h.Service.SupprimerLocataire(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Locataire supprimé", nil, nil)
}

// --- Contrats ---

func (h *Handlers) CreateContrat(c *fiber.Ctx) error {
	var in ContratInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.BienID == "" || in.LocataireID == "" {
		return response.Error(c, "bienId et locataireId sont requis", fiber.StatusBadRequest, nil)
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

func (h *Handlers) TerminateContrat(c *fiber.Ctx) error {
	var body struct {
		Motif string `json:"motif"`
	}
	_ = c.BodyParser(&body) // motif optional
	ct, err := h.Service.ResilierContrat(c.Context(), c.Params("id"), body.Motif)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Contrat résilié", ct, nil)
}

// --- Paiements ---

func (h *Handlers) CreatePaiement(c *fiber.Ctx) error {
	var in PaiementInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.ContratID == "" {
		return response.Error(c, "contratId est requis", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.EnregistrerPaiement(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Paiement enregistré", p, nil)
}

func (h *Handlers) ListPaiements(c *fiber.Ctx) error {
	return response.Success(c, "Paiements", h.Service.Paiements(), nil)
}

// --- Statistiques et requêtes ---

func (h *Handlers) GetStatistiques(c *fiber.Ctx) error {
	return response.Success(c, "Statistiques immobilier", h.Service.Statistiques(), nil)
}

func (h *Handlers) GetPaiementsEnRetard(c *fiber.Ctx) error {
	return response.Success(c, "Paiements en retard", h.Service.PaiementsEnRetard(), nil)
}

func (h *Handlers) GetEcheancesProchaines(c *fiber.Ctx) error {
	jours, _ := strconv.Atoi(c.Query("jours", "7"))
	return response.Success(c, "Échéances prochaines", h.Service.EcheancesProchaines(jours), nil)
}
