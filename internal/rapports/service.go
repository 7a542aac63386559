package rapports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"fadem-backend/internal/domain"
	"fadem-backend/internal/storage"

	"github.com/rs/zerolog/log"
)

// JournalComptable is the read-only view of the accounting transaction log
// the reporting module aggregates over.
type JournalComptable interface {
	Transactions() []domain.TransactionComptable
}

// Service owns the generated reports and derives them from the accounting
// journal.
type Service struct {
	mu      sync.Mutex
	store   *storage.Adapter
	journal JournalComptable
	now     func() time.Time
	data    domain.RapportsData
}

func NewService(ctx context.Context, store *storage.Adapter, journal JournalComptable) *Service {
	s := &Service{store: store, journal: journal, now: time.Now, data: domain.NewRapportsData()}
	store.Load(ctx, &s.data)
	return s
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.data); err != nil {
		log.Error().Err(err).Str("module", s.store.Module()).Msg("Écriture stockage échouée")
	}
}

// GenererRapportJournalier aggregates one calendar day's transactions
// (all statuses) into a daily report, replacing any report already stored
// for that day.
func (s *Service) GenererRapportJournalier(ctx context.Context, date time.Time) *domain.RapportJournalier {
	transactions := s.journal.Transactions()

	rapport := domain.RapportJournalier{
		ID:                 fmt.Sprintf("RAPJ-%d", date.UnixMilli()),
		Date:               date,
		ActivitesParModule: map[string]domain.ActiviteModule{},
		DateGeneration:     s.now(),
	}
	for _, t := range transactions {
		if !domain.MemeJour(t.Date, date) {
			continue
		}
		rapport.TransactionsCount++
		if t.Type == domain.TransactionRecette {
			rapport.Recettes += t.Montant
			act := rapport.ActivitesParModule[t.Module]
			act.Montant += t.Montant
			act.Transactions++
			rapport.ActivitesParModule[t.Module] = act
		} else {
			rapport.Depenses += t.Montant
		}
	}
	rapport.BeneficeNet = rapport.Recettes - rapport.Depenses

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.data.RapportsJournaliers[:0]
	for _, r := range s.data.RapportsJournaliers {
		if !domain.MemeJour(r.Date, date) {
			kept = append(kept, r)
		}
	}
	s.data.RapportsJournaliers = append(kept, rapport)
	s.persist(ctx)
	return &rapport
}

// GenererRapportQuotidien generates yesterday's report if it does not exist
// yet, and returns nil otherwise.
func (s *Service) GenererRapportQuotidien(ctx context.Context) *domain.RapportJournalier {
	hier := s.now().AddDate(0, 0, -1)

	s.mu.Lock()
	for _, r := range s.data.RapportsJournaliers {
		if domain.MemeJour(r.Date, hier) {
			s.mu.Unlock()
			return nil
		}
	}
	s.mu.Unlock()
	return s.GenererRapportJournalier(ctx, hier)
}

// RapportInput describes a custom report request.
type RapportInput struct {
	Nom         string    `json:"nom"`
	Description string    `json:"description"`
	DateDebut   time.Time `json:"dateDebut"`
	DateFin     time.Time `json:"dateFin"`
	Modules     []string  `json:"modules"`
	Metriques   []string  `json:"metriques"`
	GenerePar   string    `json:"generePar"`
	Format      string    `json:"format"`
}

// CreerRapportPersonnalise computes the requested metrics over the period.
// An empty modules filter means all modules. The evolution metric compares
// revenue against the equal-length window immediately before dateDebut and
// is 0 when that prior window had no revenue.
func (s *Service) CreerRapportPersonnalise(ctx context.Context, in RapportInput) (*domain.RapportPersonnalise, error) {
	if in.Nom == "" {
		return nil, domain.Invalid("Nom du rapport requis")
	}
	if in.DateFin.Before(in.DateDebut) {
		return nil, domain.Invalid("La date de fin précède la date de début")
	}

	transactions := s.journal.Transactions()
	dansModules := func(module string) bool {
		if len(in.Modules) == 0 {
			return true
		}
		return domain.ContientID(in.Modules, module)
	}
	dansPeriode := func(t time.Time, debut, fin time.Time) bool {
		return !t.Before(debut) && !t.After(fin)
	}

	var revenus, depenses float64
	var nombre int
	for _, t := range transactions {
		if !dansPeriode(t.Date, in.DateDebut, in.DateFin) || !dansModules(t.Module) {
			continue
		}
		nombre++
		if t.Type == domain.TransactionRecette {
			revenus += t.Montant
		} else {
			depenses += t.Montant
		}
	}

	donnees := map[string]float64{}
	for _, m := range in.Metriques {
		switch m {
		case domain.MetriqueRevenus:
			donnees["revenus"] = revenus
		case domain.MetriqueDepenses:
			donnees["depenses"] = depenses
		case domain.MetriqueBenefices:
			donnees["benefices"] = revenus - depenses
		case domain.MetriqueTransactions:
			donnees["nombreTransactions"] = float64(nombre)
		case domain.MetriqueEvolution:
			duree := in.DateFin.Sub(in.DateDebut)
			debutPrec := in.DateDebut.Add(-duree)
			var revenusPrec float64
			for _, t := range transactions {
				if !dansPeriode(t.Date, debutPrec, in.DateDebut) || !dansModules(t.Module) {
					continue
				}
				if t.Type == domain.TransactionRecette {
					revenusPrec += t.Montant
				}
			}
			if revenusPrec > 0 {
				donnees["evolution"] = math.Round((revenus-revenusPrec)/revenusPrec*100*100) / 100
			} else {
				donnees["evolution"] = 0
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rapport := domain.RapportPersonnalise{
		ID:             fmt.Sprintf("RAPP-%d", s.now().UnixMilli()),
		Nom:            in.Nom,
		Description:    in.Description,
		DateDebut:      in.DateDebut,
		DateFin:        in.DateFin,
		Modules:        in.Modules,
		Metriques:      in.Metriques,
		Donnees:        donnees,
		DateGeneration: s.now(),
		GenerePar:      in.GenerePar,
		Format:         in.Format,
	}
	if rapport.Modules == nil {
		rapport.Modules = []string{}
	}
	s.data.RapportsPersonnalises = append(s.data.RapportsPersonnalises, rapport)
	s.persist(ctx)
	return &rapport, nil
}

// --- Lectures ---

func (s *Service) RapportsJournaliers() []domain.RapportJournalier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RapportJournalier(nil), s.data.RapportsJournaliers...)
}

func (s *Service) RapportsPersonnalises() []domain.RapportPersonnalise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RapportPersonnalise(nil), s.data.RapportsPersonnalises...)
}

// Statistiques is the reporting dashboard summary.
type Statistiques struct {
	RapportsGeneres int        `json:"rapportsGeneres"`
	DernierRapport  *time.Time `json:"dernierRapport"`
}

func (s *Service) Statistiques() Statistiques {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Statistiques{
		RapportsGeneres: len(s.data.RapportsJournaliers) + len(s.data.RapportsPersonnalises),
	}
	for _, r := range s.data.RapportsJournaliers {
		if st.DernierRapport == nil || r.DateGeneration.After(*st.DernierRapport) {
			t := r.DateGeneration
			st.DernierRapport = &t
		}
	}
	return st
}

// RapportRecent is one entry in the merged recent-report feed.
type RapportRecent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"` // journalier | personnalise
	Nom            string    `json:"nom,omitempty"`
	Date           time.Time `json:"date"`
	DateGeneration time.Time `json:"dateGeneration"`
}

// RapportsRecents merges daily and custom reports, newest first.
func (s *Service) RapportsRecents(limite int) []RapportRecent {
	if limite <= 0 {
		limite = 10
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RapportRecent, 0, len(s.data.RapportsJournaliers)+len(s.data.RapportsPersonnalises))
	for _, r := range s.data.RapportsJournaliers {
		out = append(out, RapportRecent{ID: r.ID, Type: "journalier", Date: r.Date, DateGeneration: r.DateGeneration})
	}
	for _, r := range s.data.RapportsPersonnalises {
		out = append(out, RapportRecent{ID: r.ID, Type: "personnalise", Nom: r.Nom, Date: r.DateDebut, DateGeneration: r.DateGeneration})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateGeneration.After(out[j].DateGeneration)
	})
	if len(out) > limite {
		out = out[:limite]
	}
	return out
}

// --- Sauvegarde / échange ---

func (s *Service) Module() string { return s.store.Module() }

func (s *Service) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Export(s.data)
}

func (s *Service) Import(ctx context.Context, payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.NewRapportsData()
	if !s.store.Import(payload, &next) {
		return false
	}
	s.data = next
	s.persist(ctx)
	return true
}

// RestaurerSauvegarde replaces the dataset with the last backup copy.
func (s *Service) RestaurerSauvegarde(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.NewRapportsData()
	if !s.store.RestoreBackup(ctx, &next) {
		return false
	}
	s.data = next
	s.persist(ctx)
	return true
}

func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := domain.NewRapportsData()
	s.store.Load(ctx, &next)
	s.data = next
}
