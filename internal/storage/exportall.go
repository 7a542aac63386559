package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// allExportEnvelope is the whole-application export layout.
type allExportEnvelope struct {
	ExportDate string                     `json:"exportDate"`
	Version    string                     `json:"version"`
	Data       map[string]json.RawMessage `json:"data"`
}

// ExportAll serializes every stored module document into one payload.
// Modules with no stored data are omitted.
func ExportAll(ctx context.Context, kv KV) (string, error) {
	all := map[string]json.RawMessage{}
	for _, module := range Modules {
		raw, ok, err := kv.Get(ctx, keyPrefix+module)
		if err != nil {
			log.Error().Err(err).Str("module", module).Msg("Export: lecture échouée")
			continue
		}
		if !ok {
			continue
		}
		if !json.Valid([]byte(raw)) {
			log.Error().Str("module", module).Msg("Export: données illisibles")
			continue
		}
		all[module] = json.RawMessage(raw)
	}
	env := allExportEnvelope{
		ExportDate: time.Now().Format(time.RFC3339),
		Version:    exportVersion,
		Data:       all,
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ImportAll replaces the stored document of every module present in the
// payload. Unknown modules in the payload are ignored. Returns false without
// writing anything when the payload cannot be parsed or carries no data.
func ImportAll(ctx context.Context, kv KV, payload string) bool {
	var env allExportEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		log.Error().Err(err).Msg("Import global illisible")
		return false
	}
	if len(env.Data) == 0 {
		return false
	}
	wrote := false
	for _, module := range Modules {
		raw, ok := env.Data[module]
		if !ok {
			continue
		}
		if err := kv.Set(ctx, keyPrefix+module, string(raw)); err != nil {
			log.Error().Err(err).Str("module", module).Msg("Import: écriture échouée")
			continue
		}
		wrote = true
	}
	return wrote
}

// ResetAll deletes every fadem_-prefixed key, data and backups alike.
func ResetAll(ctx context.Context, kv KV) error {
	keys, err := kv.Keys(ctx, keyPrefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
