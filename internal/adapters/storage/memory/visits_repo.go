package memory

import (
	"context"
	"sort"
	"sync"

	"pet-clinic-visits/internal/domain/visits"
)

type visitRepo struct {
	mu     sync.RWMutex
	byID   map[int]visits.Visit
	nextID int
}

// NewVisitRepo es el store in-memory (modo dev / tests). Los ids arrancan en 1.
func NewVisitRepo() visits.Repository {
	return &visitRepo{
		byID:   make(map[int]visits.Visit),
		nextID: 1,
	}
}

func (r *visitRepo) FindAll(ctx context.Context) ([]visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]visits.Visit, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}

	// Orden estable por id (mismo orden que devuelve postgres)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *visitRepo) FindByID(ctx context.Context, id int) (visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return visits.Visit{}, visits.ErrNotFound
	}
	return v, nil
}

func (r *visitRepo) Save(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.IsNew() {
		v.ID = r.nextID
		r.nextID++
		r.byID[v.ID] = v
		return v, nil
	}

	if _, exists := r.byID[v.ID]; !exists {
		return visits.Visit{}, visits.ErrNotFound
	}
	r.byID[v.ID] = v
	return v, nil
}

// Delete toma el lock de escritura durante todo el chequeo+borrado.
func (r *visitRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return visits.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
