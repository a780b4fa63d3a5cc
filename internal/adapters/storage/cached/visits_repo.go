// Package cached envuelve un visits.Repository con un cache read-through.
// Las lecturas intentan el cache primero; Save y Delete invalidan.
// Un cache caído nunca rompe la operación: se loguea y se va al store.
//
// Cada escritura sube una generación. Una lectura que fue al store solo
// guarda en cache si no hubo escrituras entre su lectura y el Set, así una
// lectura lenta no reinstala una versión ya invalidada.
package cached

import (
	"context"
	"strconv"
	"sync"
	"time"

	"pet-clinic-visits/internal/domain/visits"
	"pet-clinic-visits/internal/platform/logger"
)

const allKey = "visits:all"

// Cache es lo que el decorator necesita del backend (rediscache.Cache lo cumple).
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

type visitRepo struct {
	next  visits.Repository
	cache Cache
	ttl   time.Duration
	log   logger.Logger

	// mu serializa "comparar generación + Set" contra "subir generación".
	mu  sync.Mutex
	gen uint64
}

// NewVisitRepo devuelve el decorator. También implementa visits.FreshReader.
func NewVisitRepo(next visits.Repository, cache Cache, ttl time.Duration, log logger.Logger) visits.Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &visitRepo{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log.With(map[string]any{"component": "visit_cache"}),
	}
}

func visitKey(id int) string {
	return "visits:" + strconv.Itoa(id)
}

func (r *visitRepo) FindAll(ctx context.Context) ([]visits.Visit, error) {
	var cached []visits.Visit
	if r.get(ctx, allKey, &cached) {
		return cached, nil
	}

	gen := r.generation()
	out, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.setIfCurrent(ctx, gen, allKey, out)
	return out, nil
}

func (r *visitRepo) FindByID(ctx context.Context, id int) (visits.Visit, error) {
	var cached visits.Visit
	if r.get(ctx, visitKey(id), &cached) {
		return cached, nil
	}

	gen := r.generation()
	v, err := r.next.FindByID(ctx, id)
	if err != nil {
		return visits.Visit{}, err
	}
	r.setIfCurrent(ctx, gen, visitKey(id), v)
	return v, nil
}

// FindByIDFresh va directo al store y no toca el cache.
func (r *visitRepo) FindByIDFresh(ctx context.Context, id int) (visits.Visit, error) {
	if fr, ok := r.next.(visits.FreshReader); ok {
		return fr.FindByIDFresh(ctx, id)
	}
	return r.next.FindByID(ctx, id)
}

func (r *visitRepo) Save(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	saved, err := r.next.Save(ctx, v)
	if err != nil {
		return visits.Visit{}, err
	}
	r.invalidate(ctx, visitKey(saved.ID), allKey)
	return saved, nil
}

func (r *visitRepo) Delete(ctx context.Context, id int) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, visitKey(id), allKey)
	return nil
}

func (r *visitRepo) get(ctx context.Context, key string, dst any) bool {
	hit, err := r.cache.Get(ctx, key, dst)
	if err != nil {
		r.log.Warn("cache get failed", map[string]any{"key": key, "err": err})
		return false
	}
	return hit
}

func (r *visitRepo) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// setIfCurrent descarta el valor si hubo una escritura desde que se leyó.
func (r *visitRepo) setIfCurrent(ctx context.Context, gen uint64, key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		r.log.Debug("cache set skipped, store changed", map[string]any{"key": key})
		return
	}
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		r.log.Warn("cache set failed", map[string]any{"key": key, "err": err})
	}
}

// invalidate sube la generación antes de borrar: un setIfCurrent en curso
// termina antes (y su valor se borra) o ve la generación nueva y no escribe.
func (r *visitRepo) invalidate(ctx context.Context, keys ...string) {
	r.mu.Lock()
	r.gen++
	r.mu.Unlock()

	if err := r.cache.Invalidate(ctx, keys...); err != nil {
		r.log.Error("cache invalidate failed", map[string]any{"keys": keys, "err": err})
	}
}
