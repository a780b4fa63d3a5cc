package visits

import (
	"context"
	"errors"

	"pet-clinic-visits/internal/domain/pets"
	"pet-clinic-visits/internal/domain/vets"
	"pet-clinic-visits/internal/platform/logger"
	"pet-clinic-visits/internal/platform/validation"
)

const objectName = "visit"

// createRules: description, pet y vet obligatorios.
type createRules struct {
	Description string    `json:"description" validate:"required,max=255"`
	Pet         *pets.Pet `json:"pet" validate:"required"`
	Vet         *vets.Vet `json:"vet" validate:"required"`
}

// updateRules: en update el vet no se toca, así que no se exige.
type updateRules struct {
	Description string    `json:"description" validate:"required,max=255"`
	Pet         *pets.Pet `json:"pet" validate:"required"`
}

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"module": "visits"}),
	}
}

func (s *Service) List(ctx context.Context) ([]Visit, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (Visit, error) {
	if id <= 0 {
		return Visit{}, ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Create valida, fuerza isPaid=false y deja que el store asigne el id.
func (s *Service) Create(ctx context.Context, in Visit) (Visit, error) {
	if verr := validation.Struct(objectName, createRules{
		Description: in.Description,
		Pet:         in.Pet,
		Vet:         in.Vet,
	}); verr != nil {
		return Visit{}, verr
	}

	in.ID = 0
	in.Paid = false
	s.warnInconsistent(in)

	saved, err := s.repo.Save(ctx, in)
	if err != nil {
		return Visit{}, err
	}
	s.log.Info("visit created", map[string]any{"visit_id": saved.ID})
	return saved, nil
}

// Update copia date, description, pet, adHoc y scheduled sobre la visita
// existente. vet e isPaid no se modifican por esta vía.
// La validación va antes del lookup: un body inválido es 400 aunque el id no exista.
func (s *Service) Update(ctx context.Context, id int, in Visit) (Visit, error) {
	if verr := validation.Struct(objectName, updateRules{
		Description: in.Description,
		Pet:         in.Pet,
	}); verr != nil {
		return Visit{}, verr
	}

	current, err := s.loadForWrite(ctx, id)
	if err != nil {
		return Visit{}, err
	}

	current.Date = in.Date
	current.Description = in.Description
	current.Pet = in.Pet
	current.AdHoc = in.AdHoc
	current.Scheduled = in.Scheduled
	s.warnInconsistent(current)

	saved, err := s.repo.Save(ctx, current)
	if err != nil {
		return Visit{}, err
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("visit deleted", map[string]any{"visit_id": id})
	return nil
}

// MarkPaid pasa la visita a pagada. Idempotente: si ya estaba pagada se
// vuelve a guardar igual y se devuelve sin error.
func (s *Service) MarkPaid(ctx context.Context, id int) (Visit, error) {
	current, err := s.loadForWrite(ctx, id)
	if err != nil {
		return Visit{}, err
	}

	current.Paid = true
	saved, err := s.repo.Save(ctx, current)
	if err != nil {
		return Visit{}, err
	}
	s.log.Info("visit marked paid", map[string]any{"visit_id": saved.ID})
	return saved, nil
}

// loadForWrite lee la visita que se va a modificar salteando cualquier cache.
func (s *Service) loadForWrite(ctx context.Context, id int) (Visit, error) {
	if id <= 0 {
		return Visit{}, ErrNotFound
	}
	if fr, ok := s.repo.(FreshReader); ok {
		return fr.FindByIDFresh(ctx, id)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) warnInconsistent(v Visit) {
	if v.Consistent() {
		return
	}
	s.log.Warn("visit adHoc/scheduled disagree; storing as received", map[string]any{
		"visit_id":  v.ID,
		"adHoc":     v.AdHoc,
		"scheduled": v.Scheduled,
	})
}

// IsValidation es un atajo para handlers.
func IsValidation(err error) (*validation.Error, bool) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
