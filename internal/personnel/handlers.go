package personnel

import (
	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// --- Employés ---

func (h *Handlers) CreateEmploye(c *fiber.Ctx) error {
	var in EmployeInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	e, err := h.Service.AjouterEmploye(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Employé créé", e, nil)
}

func (h *Handlers) ListEmployes(c *fiber.Ctx) error {
	return response.Success(c, "Employés", h.Service.Employes(), nil)
}

func (h *Handlers) UpdateEmploye(c *fiber.Ctx) error {
	var up EmployeUpdate
	if err := c.BodyParser(&up); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	e, err := h.Service.ModifierEmploye(c.Context(), c.Params("id"), up)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Employé modifié", e, nil)
}

func (h *Handlers) DeleteEmploye(c *fiber.Ctx) error {
	if err := h.Service.SupprimerEmploye(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Employé supprimé", nil, nil)
}

func (h *Handlers) GetEmployesParDepartement(c *fiber.Ctx) error {
	return response.Success(c, "Employés par département", h.Service.EmployesParDepartement(), nil)
}

// --- Salaires ---

func (h *Handlers) CreateSalaire(c *fiber.Ctx) error {
	var in SalaireInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.EmployeID == "" {
		return response.Error(c, "employeId est requis", fiber.StatusBadRequest, nil)
	}
	sal, err := h.Service.EnregistrerSalaire(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Salaire enregistré", sal, nil)
}

func (h *Handlers) ListSalaires(c *fiber.Ctx) error {
	return response.Success(c, "Salaires", h.Service.Salaires(), nil)
}

func (h *Handlers) GetSalaireDu(c *fiber.Ctx) error {
	montant := h.Service.CalculerSalaire(c.Params("id"))
	return response.Success(c, "Salaire dû", fiber.Map{"montant": montant}, nil)
}

// --- Congés ---

func (h *Handlers) CreateConge(c *fiber.Ctx) error {
	var in CongeInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.EmployeID == "" {
		return response.Error(c, "employeId est requis", fiber.StatusBadRequest, nil)
	}
	cg, err := h.Service.DemanderConge(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Demande de congé enregistrée", cg, nil)
}

func (h *Handlers) ListConges(c *fiber.Ctx) error {
	return response.Success(c, "Congés", h.Service.Conges(), nil)
}

func (h *Handlers) ProcessConge(c *fiber.Ctx) error {
	var body struct {
		Decision    string `json:"decision"`
		Approbateur string `json:"approbateur"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	cg, err := h.Service.TraiterConge(c.Context(), c.Params("id"), body.Decision, body.Approbateur)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Congé traité", cg, nil)
}

// --- Absences ---

func (h *Handlers) CreateAbsence(c *fiber.Ctx) error {
	var in AbsenceInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if in.EmployeID == "" {
		return response.Error(c, "employeId est requis", fiber.StatusBadRequest, nil)
	}
	a, err := h.Service.EnregistrerAbsence(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Absence enregistrée", a, nil)
}

func (h *Handlers) ListAbsences(c *fiber.Ctx) error {
	return response.Success(c, "Absences", h.Service.Absences(), nil)
}

// --- Formations ---

func (h *Handlers) CreateFormation(c *fiber.Ctx) error {
	var in FormationInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	f, err := h.Service.AjouterFormation(c.Context(), in)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.SuccessCreated(c, "Formation enregistrée", f, nil)
}

func (h *Handlers) ListFormations(c *fiber.Ctx) error {
	return response.Success(c, "Formations", h.Service.Formations(), nil)
}

// --- Statistiques ---

func (h *Handlers) GetStatistiques(c *fiber.Ctx) error {
	return response.Success(c, "Statistiques personnel", h.Service.Statistiques(), nil)
}
