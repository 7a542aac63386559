package storage

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	keyPrefix    = "fadem_"
	backupPrefix = "fadem_backup_"

	exportVersion  = "1.0"
	backupInterval = 5 * time.Minute
)

// Modules is the canonical list of persisted domain modules.
var Modules = []string{"immobilier", "btp", "vehicules", "personnel", "comptabilite", "rapports", "utilisateurs"}

// backupEnvelope is the persisted backup layout.
type backupEnvelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
	Module    string          `json:"module"`
}

// exportEnvelope is the single-module export layout.
type exportEnvelope struct {
	Module     string          `json:"module"`
	Data       json.RawMessage `json:"data"`
	ExportDate string          `json:"exportDate"`
	Version    string          `json:"version"`
}

// Adapter persists one module's record set as a single JSON document under
// fadem_<module>, with a throttled backup copy under fadem_backup_<module>.
type Adapter struct {
	kv     KV
	module string

	mu         sync.Mutex
	lastBackup time.Time
}

// NewAdapter builds the adapter for one module.
func NewAdapter(kv KV, module string) *Adapter {
	return &Adapter{kv: kv, module: module}
}

// Module returns the module name this adapter is scoped to.
func (a *Adapter) Module() string { return a.module }

func (a *Adapter) key() string       { return keyPrefix + a.module }
func (a *Adapter) backupKey() string { return backupPrefix + a.module }

// Load reads the module document into v. A missing key, storage failure or
// malformed document leaves v at its initial value; failures are logged, never
// propagated.
func (a *Adapter) Load(ctx context.Context, v interface{}) {
	raw, ok, err := a.kv.Get(ctx, a.key())
	if err != nil {
		log.Error().Err(err).Str("module", a.module).Msg("Lecture stockage échouée")
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Error().Err(err).Str("module", a.module).Msg("Données stockées illisibles")
	}
}

// Save writes the module document. Every save also triggers, at most once per
// five-minute window, a fire-and-forget timestamped backup copy.
func (a *Adapter) Save(ctx context.Context, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key(), string(raw)); err != nil {
		return err
	}
	a.maybeBackup(raw)
	return nil
}

func (a *Adapter) maybeBackup(raw []byte) {
	a.mu.Lock()
	if time.Since(a.lastBackup) < backupInterval {
		a.mu.Unlock()
		return
	}
	a.lastBackup = time.Now()
	a.mu.Unlock()

	go func() {
		env := backupEnvelope{
			Data:      raw,
			Timestamp: time.Now().Format(time.RFC3339),
			Module:    a.module,
		}
		payload, err := json.Marshal(env)
		if err == nil {
			err = a.kv.Set(context.Background(), a.backupKey(), string(payload))
		}
		if err != nil {
			log.Error().Err(err).Str("module", a.module).Msg("Sauvegarde backup échouée")
		}
	}()
}

// Remove deletes the module document and its backup.
func (a *Adapter) Remove(ctx context.Context) error {
	if err := a.kv.Delete(ctx, a.key()); err != nil {
		return err
	}
	return a.kv.Delete(ctx, a.backupKey())
}

// RestoreBackup reads the backup copy into v. Returns false when no usable
// backup exists.
func (a *Adapter) RestoreBackup(ctx context.Context, v interface{}) bool {
	raw, ok, err := a.kv.Get(ctx, a.backupKey())
	if err != nil || !ok {
		return false
	}
	var env backupEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		log.Error().Err(err).Str("module", a.module).Msg("Backup illisible")
		return false
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		log.Error().Err(err).Str("module", a.module).Msg("Backup illisible")
		return false
	}
	return true
}

// Export serializes v in the single-module export layout.
func (a *Adapter) Export(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	env := exportEnvelope{
		Module:     a.module,
		Data:       raw,
		ExportDate: time.Now().Format(time.RFC3339),
		Version:    exportVersion,
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Import parses a single-module export payload into v. The payload's module
// tag must match this adapter's module; any mismatch or parse failure is a
// no-op returning false. The caller persists v on success.
func (a *Adapter) Import(payload string, v interface{}) bool {
	var env exportEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		log.Error().Err(err).Str("module", a.module).Msg("Import illisible")
		return false
	}
	if env.Module != a.module || len(env.Data) == 0 {
		return false
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		log.Error().Err(err).Str("module", a.module).Msg("Import illisible")
		return false
	}
	return true
}
