package parametres

import (
	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

func (h *Handlers) ListModules(c *fiber.Ctx) error {
	return response.Success(c, "Modules", h.Service.Modules(), nil)
}

func (h *Handlers) ExportModule(c *fiber.Ctx) error {
	payload, err := h.Service.ExporterModule(c.Context(), c.Params("module"))
	if err != nil {
		return response.DomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(payload)
}

func (h *Handlers) ExportAll(c *fiber.Ctx) error {
	payload, err := h.Service.ExporterTout(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(payload)
}

func (h *Handlers) ImportModule(c *fiber.Ctx) error {
	if err := h.Service.ImporterModule(c.Context(), c.Params("module"), string(c.Body())); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Import terminé", nil, nil)
}

func (h *Handlers) ImportAll(c *fiber.Ctx) error {
	if err := h.Service.ImporterTout(c.Context(), string(c.Body())); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Import global terminé", nil, nil)
}

func (h *Handlers) RestoreBackup(c *fiber.Ctx) error {
	if err := h.Service.RestaurerSauvegarde(c.Context(), c.Params("module")); err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Sauvegarde restaurée", nil, nil)
}

func (h *Handlers) Reset(c *fiber.Ctx) error {
	if err := h.Service.Reinitialiser(c.Context()); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Réinitialisation terminée", nil, nil)
}
