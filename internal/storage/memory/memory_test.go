package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/petsteps/internal/pkg/clock"
	"github.com/cory-johannsen/petsteps/internal/storage"
	"github.com/cory-johannsen/petsteps/internal/storage/memory"
)

func TestStore_Saves(t *testing.T) {
	s := memory.New(nil)
	ctx := context.Background()

	_, err := s.Load(ctx, "p1")
	assert.ErrorIs(t, err, storage.ErrSaveNotFound)

	blob := []byte(`{"a":1}`)
	require.NoError(t, s.Save(ctx, "p1", blob))
	blob[0] = 'X'

	got, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got), "store keeps its own copy")
}

func TestStore_Battles(t *testing.T) {
	s := memory.New(nil)
	ctx := context.Background()
	for i := range 5 {
		require.NoError(t, s.RecordBattle(ctx, storage.BattleRecord{PlayerID: "p1", Turns: i}))
	}
	got, err := s.ListBattles(ctx, "p1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{4, 3, 2}, []int{got[0].Turns, got[1].Turns, got[2].Turns})
}

func TestStore_Accounts(t *testing.T) {
	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	s := memory.New(clock.NewFixed(at))
	ctx := context.Background()

	acct, err := s.Create(ctx, "ada", "pw")
	require.NoError(t, err)
	assert.Equal(t, "1", acct.ID)
	assert.Equal(t, at, acct.CreatedAt)

	_, err = s.Create(ctx, "ada", "pw2")
	assert.ErrorIs(t, err, storage.ErrAccountExists)

	got, err := s.Authenticate(ctx, "ada", "pw")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)

	_, err = s.Authenticate(ctx, "ada", "nope")
	assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "bob", "pw")
	assert.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	s := memory.New(nil)
	ctx := context.Background()
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save(ctx, "p", []byte("{}"))
			_, _ = s.Load(ctx, "p")
		}()
	}
	wg.Wait()
	_, err := s.Load(ctx, "p")
	assert.NoError(t, err)
}
