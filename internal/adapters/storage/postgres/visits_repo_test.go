package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-clinic-visits/internal/domain/pets"
	"pet-clinic-visits/internal/domain/vets"
	"pet-clinic-visits/internal/domain/visits"
)

var visitCols = []string{
	"id", "visit_date", "description", "scheduled", "ad_hoc", "is_paid",
	"pet_id", "pet_name", "birth_date",
	"type_id", "type_name",
	"owner_id", "first_name", "last_name", "address", "city", "telephone",
	"vet_id", "vet_first_name", "vet_last_name",
}

func newRepoWithMock(t *testing.T) (*VisitsRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewVisitsRepo(db), mock
}

func visitRow(id int) *sqlmock.Rows {
	return sqlmock.NewRows(visitCols).AddRow(
		int64(id), time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), "rabies shot", true, false, false,
		int64(7), "Samantha", time.Date(2012, 9, 4, 0, 0, 0, 0, time.UTC),
		int64(1), "cat",
		int64(1), "George", "Franklin", "110 W. Liberty St.", "Madison", "6085551023",
		int64(2), "Helen", "Leary",
	)
}

func toSave() visits.Visit {
	return visits.Visit{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Checkup",
		Scheduled:   true,
		Pet:         &pets.Pet{ID: 7},
		Vet:         &vets.Vet{ID: 2},
	}
}

func TestFindByID_JoinsPetAndVet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM visits v .* WHERE v\.id = \$1`).
		WithArgs(1).
		WillReturnRows(visitRow(1))
	mock.ExpectQuery(`FROM vet_specialties vs .* WHERE vs\.vet_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"vet_id", "id", "name"}).AddRow(int64(2), int64(1), "radiology"))

	got, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "rabies shot", got.Description)
	require.NotNil(t, got.Pet)
	assert.Equal(t, "Samantha", got.Pet.Name)
	assert.Equal(t, &pets.PetType{ID: 1, Name: "cat"}, got.Pet.Type)
	assert.Equal(t, "Madison", got.Pet.Owner.City)
	require.NotNil(t, got.Vet)
	assert.Equal(t, []vets.Specialty{{ID: 1, Name: "radiology"}}, got.Vet.Specialties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM visits v .* WHERE v\.id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(visitCols))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, visits.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll_EmptySkipsSpecialties(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM visits v .* ORDER BY v\.id`).
		WillReturnRows(sqlmock.NewRows(visitCols))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_InsertReturnsStoredVisit(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO visits .* RETURNING id`).
		WithArgs(sqlmock.AnyArg(), "Checkup", true, false, false, 7, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(`FROM visits v .* WHERE v\.id = \$1`).
		WithArgs(5).
		WillReturnRows(visitRow(5))
	mock.ExpectQuery(`FROM vet_specialties vs`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"vet_id", "id", "name"}))

	got, err := repo.Save(context.Background(), toSave())
	require.NoError(t, err)
	assert.Equal(t, 5, got.ID)
	assert.Equal(t, []vets.Specialty{}, got.Vet.Specialties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_ForeignKeyBecomesReferenceError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO visits`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_visits_pet"})

	_, err := repo.Save(context.Background(), toSave())
	require.ErrorIs(t, err, visits.ErrUnknownReference)

	var re *visits.ReferenceError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "pet", re.Field)
	assert.Equal(t, 7, re.ID)
}

func TestSave_UpdateMissingRow(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	in := toSave()
	in.ID = 42
	mock.ExpectExec(`UPDATE visits .* WHERE id = \$1`).
		WithArgs(42, sqlmock.AnyArg(), "Checkup", true, false, false, 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Save(context.Background(), in)
	assert.ErrorIs(t, err, visits.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_LocksThenDeletes(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM visits WHERE id = \$1 FOR UPDATE`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec(`DELETE FROM visits WHERE id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM visits WHERE id = \$1 FOR UPDATE`).
		WithArgs(3).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), visits.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ExecFailureRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec(`DELETE FROM visits`).
		WithArgs(3).
		WillReturnError(errors.New("conn reset"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, visits.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
