package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-clinic-visits/internal/domain/visits"
)

func TestVisitRepo_SaveAssignsSequentialIDs(t *testing.T) {
	repo := NewVisitRepo()
	ctx := context.Background()

	a, err := repo.Save(ctx, visits.Visit{Date: time.Now(), Description: "a"})
	require.NoError(t, err)
	b, err := repo.Save(ctx, visits.Visit{Date: time.Now(), Description: "b"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Description)
}

func TestVisitRepo_UpdateMissing(t *testing.T) {
	repo := NewVisitRepo()
	_, err := repo.Save(context.Background(), visits.Visit{ID: 42, Description: "ghost"})
	assert.ErrorIs(t, err, visits.ErrNotFound)
}

func TestVisitRepo_Delete(t *testing.T) {
	repo := NewVisitRepo()
	ctx := context.Background()

	v, err := repo.Save(ctx, visits.Visit{Description: "x"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, v.ID))
	assert.ErrorIs(t, repo.Delete(ctx, v.ID), visits.ErrNotFound)

	_, err = repo.FindByID(ctx, v.ID)
	assert.ErrorIs(t, err, visits.ErrNotFound)
}
