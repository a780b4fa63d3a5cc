package pets

import "time"

// PetType es la especie/tipo registrado en la clínica (cat, dog, lizard...).
type PetType struct {
	ID   int
	Name string
}

// Owner es el dueño de la mascota, tal como viaja embebido en la mascota.
type Owner struct {
	ID        int
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
}

// Pet es la representación mínima de una mascota para poder referenciarla
// desde una visita. El recurso pets en sí no se expone en este servicio.
type Pet struct {
	ID   int
	Name string

	BirthDate *time.Time

	Type  *PetType
	Owner *Owner
}
