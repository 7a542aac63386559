package rapports

import (
	"strconv"
	"time"

	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

func (h *Handlers) GenerateJournalier(c *fiber.Ctx) error {
	var body struct {
		Date time.Time `json:"date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	date := body.Date
	if date.IsZero() {
		date = time.Now()
	}
	rapport := h.Service.GenererRapportJournalier(c.Context(), date)
	return response.SuccessCreated(c, "Rapport journalier généré", rapport, nil)
}

func (h *Handlers) GenerateQuotidien(c *fiber.Ctx) error {
	rapport := h.Service.GenererRapportQuotidien(c.Context())
	if rapport == nil {
		return response.Success(c, "Rapport de la veille déjà généré", nil, nil)
	}
	return response.SuccessCreated(c, "Rapport quotidien généré", rapport, nil)
}

func (h *Handlers) ListJournaliers(c *fiber.Ctx) error {
	return response.Success(c, "Rapports journaliers", h.Service.RapportsJournaliers(), nil)
}

func (h *Handlers) CreatePersonnalise(c *fiber.Ctx) error {
	var in RapportInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	rapport, err := h.Service.CreerRapportPersonnalise(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Rapport personnalisé créé", rapport, nil)
}

func (h *Handlers) ListPersonnalises(c *fiber.Ctx) error {
	return response.Success(c, "Rapports personnalisés", h.Service.RapportsPersonnalises(), nil)
}

func (h *Handlers) GetStatistiques(c *fiber.Ctx) error {
	return response.Success(c, "Statistiques rapports", h.Service.Statistiques(), nil)
}

func (h *Handlers) GetRecents(c *fiber.Ctx) error {
	limite, err := strconv.Atoi(c.Query("limite", "10"))
	if err != nil {
		return response.Error(c, "Paramètre limite invalide", fiber.StatusBadRequest, nil)
	}
	return response.Success(c, "Rapports récents", h.Service.RapportsRecents(limite), nil)
}
