package app

import (
	"context"
	"time"

	"fadem-backend/internal/auth"
	"fadem-backend/internal/btp"
	"fadem-backend/internal/comptabilite"
	"fadem-backend/internal/config"
	"fadem-backend/internal/immobilier"
	"fadem-backend/internal/middleware"
	"fadem-backend/internal/parametres"
	"fadem-backend/internal/personnel"
	"fadem-backend/internal/pkg/response"
	"fadem-backend/internal/rapports"
	"fadem-backend/internal/storage"
	"fadem-backend/internal/vehicules"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Services groups every business service for callers that need direct
// access (startup seeding, tests).
type Services struct {
	Immobilier   *immobilier.Service
	BTP          *btp.Service
	Vehicules    *vehicules.Service
	Personnel    *personnel.Service
	Comptabilite *comptabilite.Service
	Rapports     *rapports.Service
	Auth         *auth.Service
	Parametres   *parametres.Service
}

// CreateApp opens the configured store, builds every module service and
// returns the Fiber app with all global middleware and routes registered.
func CreateApp(cfg *config.Config) (*fiber.App, *Services, error) {
	kv, err := storage.Open(cfg.StorageDriver, cfg.SQLitePath, cfg.DatabaseURL, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return CreateAppWithKV(cfg, kv)
}

// CreateAppWithKV is CreateApp over an already-open store (tests use an
// in-memory KV).
func CreateAppWithKV(cfg *config.Config, kv storage.KV) (*fiber.App, *Services, error) {
	ctx := context.Background()

	svc := &Services{
		Immobilier: immobilier.NewService(ctx, storage.NewAdapter(kv, "immobilier")),
		BTP:        btp.NewService(ctx, storage.NewAdapter(kv, "btp")),
		Vehicules:  vehicules.NewService(ctx, storage.NewAdapter(kv, "vehicules")),
		Personnel:  personnel.NewService(ctx, storage.NewAdapter(kv, "personnel")),
		Auth:       auth.NewService(ctx, storage.NewAdapter(kv, "utilisateurs"), kv, time.Duration(cfg.SessionTTLHours)*time.Hour),
	}
	svc.Comptabilite = comptabilite.NewService(ctx, storage.NewAdapter(kv, "comptabilite"))
	svc.Rapports = rapports.NewService(ctx, storage.NewAdapter(kv, "rapports"), svc.Comptabilite)
	svc.Parametres = parametres.NewService(kv,
		svc.Immobilier, svc.BTP, svc.Vehicules, svc.Personnel,
		svc.Comptabilite, svc.Rapports, svc.Auth)

	seedAdmin(ctx, cfg, svc.Auth)

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return response.Success(c, "OK", fiber.Map{"env": cfg.Env}, nil)
	})

	registerRoutes(app, svc)
	return app, svc, nil
}

// seedAdmin creates the initial admin account on an empty user base.
func seedAdmin(ctx context.Context, cfg *config.Config, svc *auth.Service) {
	if cfg.AdminPassword == "" || len(svc.Utilisateurs()) > 0 {
		return
	}
	_, err := svc.CreerUtilisateur(ctx, auth.UtilisateurInput{
		Nom:          "admin",
		MotDePasse:   cfg.AdminPassword,
		ModulesAcces: append([]string(nil), storage.Modules...),
	})
	if err != nil {
		log.Error().Err(err).Msg("Création du compte admin échouée")
		return
	}
	log.Info().Msg("Compte admin initial créé")
}

func registerRoutes(app *fiber.App, svc *Services) {
	api := app.Group("/api/v1")
	requireAuth := middleware.RequireAuth(svc.Auth)

	// Auth
	authH := &auth.Handlers{Service: svc.Auth}
	authG := api.Group("/auth")
	authG.Post("/login", authH.Login)
	authG.Get("/me", authH.Me)
	authG.Delete("/logout", authH.Logout)
	authG.Post("/utilisateurs", requireAuth, authH.Register)
	authG.Get("/utilisateurs", requireAuth, authH.ListUtilisateurs)

	// Immobilier
	immoH := &immobilier.Handlers{Service: svc.Immobilier}
	immo := api.Group("/immobilier")
	immo.Post("/proprietaires", immoH.CreateProprietaire)
	immo.Get("/proprietaires", immoH.ListProprietaires)
	immo.Patch("/proprietaires/:id", immoH.UpdateProprietaire)
	immo.Delete("/proprietaires/:id", immoH.DeleteProprietaire)
	immo.Post("/biens", immoH.CreateBien)
	immo.Get("/biens", immoH.ListBiens)
	immo.Patch("/biens/:id", immoH.UpdateBien)
	immo.Delete("/biens/:id", immoH.DeleteBien)
	immo.Post("/locataires", immoH.CreateLocataire)
	immo.Get("/locataires", immoH.ListLocataires)
	immo.Patch("/locataires/:id", immoH.UpdateLocataire)
	immo.Delete("/locataires/:id", immoH.DeleteLocataire)
	immo.Post("/contrats", immoH.CreateContrat)
	immo.Get("/contrats", immoH.ListContrats)
	immo.Patch("/contrats/:id", immoH.UpdateContrat)
	immo.Post("/contrats/:id/resiliation", immoH.TerminateContrat)
	immo.Post("/paiements", immoH.CreatePaiement)
	immo.Get("/paiements", immoH.ListPaiements)
	immo.Get("/paiements/retards", immoH.GetPaiementsEnRetard)
	immo.Get("/echeances", immoH.GetEcheancesProchaines)
	immo.Get("/statistiques", immoH.GetStatistiques)

	// BTP
	btpH := &btp.Handlers{Service: svc.BTP}
	btpG := api.Group("/btp")
	btpG.Post("/chantiers", btpH.CreateChantier)
	btpG.Get("/chantiers", btpH.ListChantiers)
	btpG.Patch("/chantiers/:id", btpH.UpdateChantier)
	btpG.Delete("/chantiers/:id", btpH.DeleteChantier)
	btpG.Post("/chantiers/:id/equipe", btpH.AssignOuvrier)
	btpG.Get("/chantiers/:id/depenses", btpH.ListDepensesChantier)
	btpG.Get("/chantiers/retards", btpH.ListChantiersEnRetard)
	btpG.Post("/materiaux", btpH.CreateMateriau)
	btpG.Get("/materiaux", btpH.ListMateriaux)
	btpG.Post("/depenses", btpH.CreateDepense)
	btpG.Get("/depenses", btpH.ListDepenses)
	btpG.Get("/statistiques", btpH.GetStatistiques)

	// Vehicules
	vehH := &vehicules.Handlers{Service: svc.Vehicules}
	veh := api.Group("/vehicules")
	veh.Post("/proprietaires", vehH.CreateProprietaire)
	veh.Get("/proprietaires", vehH.ListProprietaires)
	veh.Patch("/proprietaires/:id", vehH.UpdateProprietaire)
	veh.Delete("/proprietaires/:id", vehH.DeleteProprietaire)
	veh.Post("/vehicules", vehH.CreateVehicule)
	veh.Get("/vehicules", vehH.ListVehicules)
	veh.Get("/vehicules/disponibles", vehH.ListVehiculesDisponibles)
	veh.Patch("/vehicules/:id", vehH.UpdateVehicule)
	veh.Delete("/vehicules/:id", vehH.DeleteVehicule)
	veh.Post("/contrats", vehH.CreateContrat)
	veh.Get("/contrats", vehH.ListContrats)
	veh.Get("/contrats/actifs", vehH.ListContratsActifs)
	veh.Patch("/contrats/:id", vehH.UpdateContrat)
	veh.Post("/contrats/:id/fin", vehH.TerminateLocation)
	veh.Get("/historique", vehH.ListHistorique)
	veh.Get("/statistiques", vehH.GetStatistiques)

	// Personnel
	persH := &personnel.Handlers{Service: svc.Personnel}
	pers := api.Group("/personnel")
	pers.Post("/employes", persH.CreateEmploye)
	pers.Get("/employes", persH.ListEmployes)
	pers.Patch("/employes/:id", persH.UpdateEmploye)
	pers.Delete("/employes/:id", persH.DeleteEmploye)
	pers.Get("/employes/:id/salaire", persH.GetSalaireDu)
	pers.Get("/departements", persH.GetEmployesParDepartement)
	pers.Post("/salaires", persH.CreateSalaire)
	pers.Get("/salaires", persH.ListSalaires)
	pers.Post("/conges", persH.CreateConge)
	pers.Get("/conges", persH.ListConges)
	pers.Post("/conges/:id/decision", persH.ProcessConge)
	pers.Post("/absences", persH.CreateAbsence)
	pers.Get("/absences", persH.ListAbsences)
	pers.Post("/formations", persH.CreateFormation)
	pers.Get("/formations", persH.ListFormations)
	pers.Get("/statistiques", persH.GetStatistiques)

	// Comptabilite
	comptaH := &comptabilite.Handlers{Service: svc.Comptabilite}
	compta := api.Group("/comptabilite")
	compta.Post("/comptes", comptaH.CreateCompte)
	compta.Get("/comptes", comptaH.ListComptes)
	compta.Patch("/comptes/:id", comptaH.UpdateCompte)
	compta.Delete("/comptes/:id", comptaH.DeleteCompte)
	compta.Post("/transactions", comptaH.CreateTransaction)
	compta.Get("/transactions", comptaH.ListTransactions)
	compta.Patch("/transactions/:id", comptaH.UpdateTransaction)
	compta.Delete("/transactions/:id", comptaH.DeleteTransaction)
	compta.Post("/categories", comptaH.CreateCategorie)
	compta.Get("/categories", comptaH.ListCategories)
	compta.Get("/statistiques", comptaH.GetStatistiques)
	compta.Get("/bilans", comptaH.GetBilans)
	compta.Get("/revenus-par-module", comptaH.GetRevenusParModule)
	compta.Get("/depenses-par-categorie", comptaH.GetDepensesParCategorie)

	// Rapports
	rapH := &rapports.Handlers{Service: svc.Rapports}
	rap := api.Group("/rapports")
	rap.Post("/journaliers", rapH.GenerateJournalier)
	rap.Post("/journaliers/quotidien", rapH.GenerateQuotidien)
	rap.Get("/journaliers", rapH.ListJournaliers)
	rap.Post("/personnalises", rapH.CreatePersonnalise)
	rap.Get("/personnalises", rapH.ListPersonnalises)
	rap.Get("/recents", rapH.GetRecents)
	rap.Get("/statistiques", rapH.GetStatistiques)

	// Parametres: data exchange; mutating routes need a session.
	paramH := &parametres.Handlers{Service: svc.Parametres}
	param := api.Group("/parametres")
	param.Get("/modules", paramH.ListModules)
	param.Get("/export", paramH.ExportAll)
	param.Get("/export/:module", paramH.ExportModule)
	param.Post("/import", requireAuth, paramH.ImportAll)
	param.Post("/import/:module", requireAuth, paramH.ImportModule)
	param.Post("/restauration/:module", requireAuth, paramH.RestoreBackup)
	param.Post("/reinitialisation", requireAuth, paramH.Reset)
}
