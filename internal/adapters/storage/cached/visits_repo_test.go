package cached

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-clinic-visits/internal/adapters/storage/memory"
	"pet-clinic-visits/internal/domain/pets"
	"pet-clinic-visits/internal/domain/vets"
	"pet-clinic-visits/internal/domain/visits"
	"pet-clinic-visits/internal/platform/logger"
)

type fakeCache struct {
	data   map[string][]byte
	gets   int
	hits   int
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// countingRepo cuenta lecturas que llegan al store.
type countingRepo struct {
	visits.Repository
	reads int
}

func (r *countingRepo) FindByID(ctx context.Context, id int) (visits.Visit, error) {
	r.reads++
	return r.Repository.FindByID(ctx, id)
}

func (r *countingRepo) FindAll(ctx context.Context) ([]visits.Visit, error) {
	r.reads++
	return r.Repository.FindAll(ctx)
}

func sample() visits.Visit {
	bd := time.Date(2010, 9, 7, 0, 0, 0, 0, time.UTC)
	return visits.Visit{
		Date:        time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Description: "Checkup",
		Scheduled:   true,
		Pet:         &pets.Pet{ID: 1, Name: "Leo", BirthDate: &bd},
		Vet:         &vets.Vet{ID: 2, FirstName: "Helen", LastName: "Leary", Specialties: []vets.Specialty{}},
	}
}

func TestCachedRepo_ReadThrough(t *testing.T) {
	store := &countingRepo{Repository: memory.NewVisitRepo()}
	cache := newFakeCache()
	repo := NewVisitRepo(store, cache, time.Minute, logger.Nop())
	ctx := context.Background()

	saved, err := repo.Save(ctx, sample())
	require.NoError(t, err)

	first, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, store.reads)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
	assert.True(t, saved.Date.Equal(second.Date))
}

func TestCachedRepo_WritesInvalidate(t *testing.T) {
	store := &countingRepo{Repository: memory.NewVisitRepo()}
	cache := newFakeCache()
	repo := NewVisitRepo(store, cache, time.Minute, logger.Nop())
	ctx := context.Background()

	saved, err := repo.Save(ctx, sample())
	require.NoError(t, err)

	list, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, err = repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)

	saved.Paid = true
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid, "el cache no debe devolver la versión vieja")

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, visits.ErrNotFound)

	list, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCachedRepo_CacheErrorFallsBackToStore(t *testing.T) {
	store := &countingRepo{Repository: memory.NewVisitRepo()}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	repo := NewVisitRepo(store, cache, time.Minute, nil)
	ctx := context.Background()

	saved, err := repo.Save(ctx, sample())
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, 1, store.reads)
}

func TestCachedRepo_MissNotCached(t *testing.T) {
	cache := newFakeCache()
	repo := NewVisitRepo(memory.NewVisitRepo(), cache, time.Minute, nil)

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, visits.ErrNotFound)
	assert.Empty(t, cache.data)
}

// interleavingRepo corre after una sola vez, entre la lectura del store y
// la vuelta al decorator.
type interleavingRepo struct {
	visits.Repository
	after func()
}

func (r *interleavingRepo) FindByID(ctx context.Context, id int) (visits.Visit, error) {
	v, err := r.Repository.FindByID(ctx, id)
	if fn := r.after; fn != nil {
		r.after = nil
		fn()
	}
	return v, err
}

func TestCachedRepo_WriteDuringReadIsNotCached(t *testing.T) {
	store := &interleavingRepo{Repository: memory.NewVisitRepo()}
	cache := newFakeCache()
	repo := NewVisitRepo(store, cache, time.Minute, logger.Nop())
	svc := visits.NewService(repo, logger.Nop())
	ctx := context.Background()

	saved, err := repo.Save(ctx, sample())
	require.NoError(t, err)

	store.after = func() {
		_, err := svc.MarkPaid(ctx, saved.ID)
		require.NoError(t, err)
	}
	raced, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, raced.Paid)
	assert.NotContains(t, cache.data, visitKey(saved.ID))

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid)

	in := sample()
	in.Description = "Follow-up"
	_, err = svc.Update(ctx, saved.ID, in)
	require.NoError(t, err)

	stored, err := store.Repository.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, stored.Paid)
	assert.Equal(t, "Follow-up", stored.Description)
}

func TestCachedRepo_UpdateIgnoresStaleEntry(t *testing.T) {
	store := memory.NewVisitRepo()
	cache := newFakeCache()
	repo := NewVisitRepo(store, cache, time.Minute, logger.Nop())
	svc := visits.NewService(repo, logger.Nop())
	ctx := context.Background()

	saved, err := repo.Save(ctx, sample())
	require.NoError(t, err)
	stale := saved

	saved.Paid = true
	_, err = store.Save(ctx, saved)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, visitKey(saved.ID), stale, time.Minute))

	in := sample()
	in.Description = "Follow-up"
	updated, err := svc.Update(ctx, saved.ID, in)
	require.NoError(t, err)
	assert.True(t, updated.Paid)

	stored, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, stored.Paid)
}

func TestCachedRepo_FindAllAfterConcurrentWriteIsNotCached(t *testing.T) {
	mem := memory.NewVisitRepo()
	cache := newFakeCache()
	var repo visits.Repository
	store := &listInterleavingRepo{Repository: mem}
	repo = NewVisitRepo(store, cache, time.Minute, logger.Nop())
	ctx := context.Background()

	store.after = func() {
		_, err := repo.Save(ctx, sample())
		require.NoError(t, err)
	}
	list, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotContains(t, cache.data, allKey)

	list, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

type listInterleavingRepo struct {
	visits.Repository
	after func()
}

func (r *listInterleavingRepo) FindAll(ctx context.Context) ([]visits.Visit, error) {
	out, err := r.Repository.FindAll(ctx)
	if fn := r.after; fn != nil {
		r.after = nil
		fn()
	}
	return out, err
}
