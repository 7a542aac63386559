package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisKV(t *testing.T) *RedisKV {
	mr := miniredis.RunT(t)
	kv, err := OpenRedis("redis://" + mr.Addr())
	require.NoError(t, err)
	return kv
}

func TestRedisKVRoundtrip(t *testing.T) {
	ctx := context.Background()
	kv := newRedisKV(t)

	_, ok, err := kv.Get(ctx, "fadem_immobilier")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "fadem_immobilier", `{"biens":[]}`))
	val, ok, err := kv.Get(ctx, "fadem_immobilier")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"biens":[]}`, val)

	require.NoError(t, kv.Delete(ctx, "fadem_immobilier"))
	_, ok, err = kv.Get(ctx, "fadem_immobilier")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisKVKeysPrefix(t *testing.T) {
	ctx := context.Background()
	kv := newRedisKV(t)

	require.NoError(t, kv.Set(ctx, "fadem_btp", "{}"))
	require.NoError(t, kv.Set(ctx, "fadem_backup_btp", "{}"))
	require.NoError(t, kv.Set(ctx, "autre", "{}"))

	keys, err := kv.Keys(ctx, "fadem_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fadem_btp", "fadem_backup_btp"}, keys)
}

// The adapter works identically over the Redis store.
func TestAdapterOverRedis(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(newRedisKV(t), "vehicules")

	require.NoError(t, a.Save(ctx, fiche{Nom: "flotte", Solde: 3}))
	var out fiche
	a.Load(ctx, &out)
	assert.Equal(t, "flotte", out.Nom)
}
