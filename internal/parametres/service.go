// Package parametres is the administration surface: per-module and
// whole-application export, import, backup restore and full reset.
package parametres

import (
	"context"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/storage"
)

// ModuleService is what every business module exposes to the admin surface.
type ModuleService interface {
	Module() string
	Export(ctx context.Context) (string, error)
	Import(ctx context.Context, payload string) bool
	RestaurerSauvegarde(ctx context.Context) bool
	Reload(ctx context.Context)
}

// Service coordinates data exchange across all registered modules.
type Service struct {
	kv       storage.KV
	services []ModuleService
}

func NewService(kv storage.KV, services ...ModuleService) *Service {
	return &Service{kv: kv, services: services}
}

func (s *Service) find(module string) ModuleService {
	for _, svc := range s.services {
		if svc.Module() == module {
			return svc
		}
	}
	return nil
}

// ExporterModule serializes one module's dataset into the exchange format.
func (s *Service) ExporterModule(ctx context.Context, module string) (string, error) {
	svc := s.find(module)
	if svc == nil {
		return "", domain.NotFound("Module", module)
	}
	return svc.Export(ctx)
}

// ExporterTout serializes every module's stored dataset into one payload.
func (s *Service) ExporterTout(ctx context.Context) (string, error) {
	return storage.ExportAll(ctx, s.kv)
}

// ImporterModule replaces one module's dataset from an exchange payload.
// The payload's module tag must match.
func (s *Service) ImporterModule(ctx context.Context, module, payload string) error {
	svc := s.find(module)
	if svc == nil {
		return domain.NotFound("Module", module)
	}
	if !svc.Import(ctx, payload) {
		return domain.Invalid("Données d'import invalides pour le module " + module)
	}
	return nil
}

// ImporterTout replaces every module present in a whole-application payload,
// then reloads all services from storage.
func (s *Service) ImporterTout(ctx context.Context, payload string) error {
	if !storage.ImportAll(ctx, s.kv, payload) {
		return domain.Invalid("Données d'import globales invalides")
	}
	for _, svc := range s.services {
		svc.Reload(ctx)
	}
	return nil
}

// RestaurerSauvegarde rolls one module back to its last backup copy.
func (s *Service) RestaurerSauvegarde(ctx context.Context, module string) error {
	svc := s.find(module)
	if svc == nil {
		return domain.NotFound("Module", module)
	}
	if !svc.RestaurerSauvegarde(ctx) {
		return domain.Invalid("Aucune sauvegarde exploitable pour le module " + module)
	}
	return nil
}

// Reinitialiser wipes all stored data and resets every service to its
// initial dataset.
func (s *Service) Reinitialiser(ctx context.Context) error {
	if err := storage.ResetAll(ctx, s.kv); err != nil {
		return err
	}
	for _, svc := range s.services {
		svc.Reload(ctx)
	}
	return nil
}

// Modules lists the registered module names.
func (s *Service) Modules() []string {
	out := make([]string, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc.Module())
	}
	return out
}
