package visits

import (
	"time"

	"pet-clinic-visits/internal/domain/pets"
	"pet-clinic-visits/internal/domain/vets"
)

// Visit es la cita de una mascota en la clínica.
type Visit struct {
	ID int // 0 = todavía no creada; lo asigna el store

	Date        time.Time
	Description string

	// Scheduled y AdHoc deberían ser siempre opuestos, pero el wire permite
	// setearlos por separado y se guardan tal cual llegan. Ver Consistent().
	Scheduled bool
	AdHoc     bool

	Paid bool

	Vet *vets.Vet
	Pet *pets.Pet
}

// New crea una visita con fecha = ahora.
func New() Visit {
	return Visit{Date: time.Now()}
}

func (v Visit) IsNew() bool { return v.ID == 0 }

// SameAs compara identidad (id), solo para visitas ya persistidas.
func (v Visit) SameAs(o Visit) bool {
	return v.ID != 0 && v.ID == o.ID
}

// Consistent reporta si adHoc == !scheduled. Solo diagnóstico: no se fuerza.
func (v Visit) Consistent() bool {
	return v.AdHoc != v.Scheduled
}
