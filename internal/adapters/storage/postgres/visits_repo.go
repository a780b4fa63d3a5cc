package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"pet-clinic-visits/internal/domain/pets"
	"pet-clinic-visits/internal/domain/vets"
	"pet-clinic-visits/internal/domain/visits"
)

const (
	pgForeignKeyViolation = "23503"

	fkVisitPet = "fk_visits_pet"
	fkVisitVet = "fk_visits_vet"
)

const selectVisits = `
	SELECT
		v.id, v.visit_date, v.description,
		v.scheduled, v.ad_hoc, v.is_paid,
		p.id, p.name, p.birth_date,
		t.id, t.name,
		o.id, o.first_name, o.last_name, o.address, o.city, o.telephone,
		ve.id, ve.first_name, ve.last_name
	FROM visits v
	JOIN pets p ON p.id = v.pet_id
	LEFT JOIN types t ON t.id = p.type_id
	LEFT JOIN owners o ON o.id = p.owner_id
	JOIN vets ve ON ve.id = v.vet_id
`

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

var _ visits.Repository = (*VisitsRepo)(nil)

func (r *VisitsRepo) FindAll(ctx context.Context) ([]visits.Visit, error) {
	rows, err := r.db.QueryContext(ctx, selectVisits+` ORDER BY v.id`)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	specs, err := loadSpecialties(ctx, r.db, 0)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if s, ok := specs[out[i].Vet.ID]; ok {
			out[i].Vet.Specialties = s
		}
	}
	return out, nil
}

func (r *VisitsRepo) FindByID(ctx context.Context, id int) (visits.Visit, error) {
	return findByID(ctx, r.db, id)
}

func findByID(ctx context.Context, q DBTX, id int) (visits.Visit, error) {
	rows, err := q.QueryContext(ctx, selectVisits+` WHERE v.id = $1`, id)
	if err != nil {
		return visits.Visit{}, fmt.Errorf("get visit: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return visits.Visit{}, fmt.Errorf("get visit: %w", err)
		}
		return visits.Visit{}, visits.ErrNotFound
	}
	v, err := scanVisit(rows)
	if err != nil {
		return visits.Visit{}, err
	}
	_ = rows.Close()

	specs, err := loadSpecialties(ctx, q, v.Vet.ID)
	if err != nil {
		return visits.Visit{}, err
	}
	if s, ok := specs[v.Vet.ID]; ok {
		v.Vet.Specialties = s
	}
	return v, nil
}

// Save inserta (ID == 0) o actualiza. Devuelve la visita releída del store,
// con pet y vet completos.
func (r *VisitsRepo) Save(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	if v.Pet == nil || v.Vet == nil {
		return visits.Visit{}, errors.New("save visit: pet and vet are required")
	}

	if v.IsNew() {
		var id int
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO visits (
				visit_date, description,
				scheduled, ad_hoc, is_paid,
				pet_id, vet_id
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`,
			v.Date,
			v.Description,
			v.Scheduled,
			v.AdHoc,
			v.Paid,
			v.Pet.ID,
			v.Vet.ID,
		).Scan(&id)
		if err != nil {
			return visits.Visit{}, mapWriteError(err, v)
		}
		return r.FindByID(ctx, id)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE visits
		SET
			visit_date = $2,
			description = $3,
			scheduled = $4,
			ad_hoc = $5,
			is_paid = $6,
			pet_id = $7,
			vet_id = $8
		WHERE id = $1
	`,
		v.ID,
		v.Date,
		v.Description,
		v.Scheduled,
		v.AdHoc,
		v.Paid,
		v.Pet.ID,
		v.Vet.ID,
	)
	if err != nil {
		return visits.Visit{}, mapWriteError(err, v)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return visits.Visit{}, visits.ErrNotFound
	}
	return r.FindByID(ctx, v.ID)
}

// Delete bloquea la fila y la borra en la misma transacción.
func (r *VisitsRepo) Delete(ctx context.Context, id int) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		var found int
		err := tx.QueryRowContext(ctx, `SELECT id FROM visits WHERE id = $1 FOR UPDATE`, id).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return visits.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock visit: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM visits WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete visit: %w", err)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVisit(s scanner) (visits.Visit, error) {
	var (
		v   visits.Visit
		pet pets.Pet
		vet vets.Vet

		birthDate sql.NullTime

		typeID   sql.NullInt64
		typeName sql.NullString

		ownerID                                     sql.NullInt64
		ownerFirst, ownerLast, ownerAddr, ownerCity sql.NullString
		ownerPhone                                  sql.NullString
	)

	err := s.Scan(
		&v.ID, &v.Date, &v.Description,
		&v.Scheduled, &v.AdHoc, &v.Paid,
		&pet.ID, &pet.Name, &birthDate,
		&typeID, &typeName,
		&ownerID, &ownerFirst, &ownerLast, &ownerAddr, &ownerCity, &ownerPhone,
		&vet.ID, &vet.FirstName, &vet.LastName,
	)
	if err != nil {
		return visits.Visit{}, fmt.Errorf("scan visit: %w", err)
	}

	if birthDate.Valid {
		bd := birthDate.Time
		pet.BirthDate = &bd
	}
	if typeID.Valid {
		pet.Type = &pets.PetType{ID: int(typeID.Int64), Name: typeName.String}
	}
	if ownerID.Valid {
		pet.Owner = &pets.Owner{
			ID:        int(ownerID.Int64),
			FirstName: ownerFirst.String,
			LastName:  ownerLast.String,
			Address:   ownerAddr.String,
			City:      ownerCity.String,
			Telephone: ownerPhone.String,
		}
	}

	vet.Specialties = []vets.Specialty{}
	v.Pet = &pet
	v.Vet = &vet
	return v, nil
}

// loadSpecialties devuelve especialidades por vet. vetID == 0 trae todas.
func loadSpecialties(ctx context.Context, q DBTX, vetID int) (map[int][]vets.Specialty, error) {
	query := `
		SELECT vs.vet_id, s.id, s.name
		FROM vet_specialties vs
		JOIN specialties s ON s.id = vs.specialty_id
	`
	args := []any{}
	if vetID != 0 {
		query += ` WHERE vs.vet_id = $1`
		args = append(args, vetID)
	}
	query += ` ORDER BY vs.vet_id, s.name`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load specialties: %w", err)
	}
	defer rows.Close()

	out := map[int][]vets.Specialty{}
	for rows.Next() {
		var vid int
		var s vets.Specialty
		if err := rows.Scan(&vid, &s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan specialty: %w", err)
		}
		out[vid] = append(out[vid], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load specialties: %w", err)
	}
	return out, nil
}

// mapWriteError traduce FK violations de pet/vet a ReferenceError.
func mapWriteError(err error, v visits.Visit) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		switch pgErr.ConstraintName {
		case fkVisitPet:
			return &visits.ReferenceError{Field: "pet", ID: v.Pet.ID}
		case fkVisitVet:
			return &visits.ReferenceError{Field: "vet", ID: v.Vet.ID}
		}
	}
	return fmt.Errorf("save visit: %w", err)
}
