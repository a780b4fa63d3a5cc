package vets

// Specialty es una especialidad veterinaria (radiology, surgery, dentistry).
type Specialty struct {
	ID   int
	Name string
}

// Vet es la representación mínima de un veterinario para embeberlo en una visita.
type Vet struct {
	ID        int
	FirstName string
	LastName  string

	Specialties []Specialty
}
