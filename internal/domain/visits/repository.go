package visits

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("visit not found")
	ErrUnknownReference = errors.New("unknown reference")
)

// ReferenceError indica que pet o vet apuntan a un id que el store no conoce.
type ReferenceError struct {
	Field string // "pet" | "vet"
	ID    int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Field, e.ID, ErrUnknownReference)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrUnknownReference }

// Repository es el store de visitas.
//   - Save inserta si v.ID == 0 (y devuelve la visita con id asignado), si no actualiza.
//   - Delete corre en una unidad atómica propia; ErrNotFound si no existe.
type Repository interface {
	FindAll(ctx context.Context) ([]Visit, error)
	FindByID(ctx context.Context, id int) (Visit, error)
	Save(ctx context.Context, v Visit) (Visit, error)
	Delete(ctx context.Context, id int) error
}

// FreshReader lo implementan los stores con cache delante. FindByIDFresh lee
// siempre del store de fondo; el service lo usa antes de escribir para no
// copiar sobre una versión vieja.
type FreshReader interface {
	FindByIDFresh(ctx context.Context, id int) (Visit, error)
}
