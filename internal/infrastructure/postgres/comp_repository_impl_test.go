package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
	"github.com/oksasatya/bg-companion-api/internal/domain/repository"
)

var compCols = []string{"id", "name", "core_cards", "addon_cards", "hero_cards", "spell_cards", "created_at", "created_by"}

func newCompMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return mock
}

func TestCompRepository_Create(t *testing.T) {
	mock := newCompMock(t)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO comps`).
		WithArgs("Undead", []string{"https://img/1.png"}, []string{}, []string{}, []string{}, "u-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("c-1", created))

	c := &entity.Comp{Name: "Undead", CoreCards: []string{"https://img/1.png"}, CreatedBy: "u-1"}
	require.NoError(t, NewCompRepository(mock).Create(context.Background(), c))

	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, created, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompRepository_ListByOwner(t *testing.T) {
	mock := newCompMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM comps\s+WHERE created_by = \$1\s+ORDER BY created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows(compCols).
			AddRow("c-2", "Beasts", []string{"a"}, []string{}, []string{}, []string{}, now, "u-1").
			AddRow("c-1", "Undead", []string{"b"}, []string{}, []string{"h"}, []string{}, now.Add(-time.Hour), "u-1"))

	got, err := NewCompRepository(mock).ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c-2", got[0].ID)
	assert.Equal(t, []string{"h"}, got[1].HeroCards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompRepository_ListByOwner_Empty(t *testing.T) {
	mock := newCompMock(t)
	mock.ExpectQuery(`FROM comps`).WithArgs("u-1").WillReturnRows(pgxmock.NewRows(compCols))

	got, err := NewCompRepository(mock).ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCompRepository_GetByIDForOwner(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		anyErr    bool
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE id = \$1 AND created_by = \$2`).
					WithArgs("c-1", "u-1").
					WillReturnRows(pgxmock.NewRows(compCols).
						AddRow("c-1", "Undead", []string{}, []string{}, []string{}, []string{}, time.Now(), "u-1"))
			},
		},
		{
			name: "other owner or missing",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE id = \$1 AND created_by = \$2`).
					WithArgs("c-1", "u-1").
					WillReturnRows(pgxmock.NewRows(compCols))
			},
			wantErr: repository.ErrCompNotFound,
		},
		{
			name: "store failure",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE id = \$1 AND created_by = \$2`).
					WithArgs("c-1", "u-1").
					WillReturnError(errors.New("connection reset"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newCompMock(t)
			tt.setupMock(mock)

			c, err := NewCompRepository(mock).GetByIDForOwner(context.Background(), "c-1", "u-1")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, repository.ErrCompNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Undead", c.Name)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCompRepository_Update(t *testing.T) {
	mock := newCompMock(t)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE comps`).
		WithArgs("Renamed", []string{}, []string{}, []string{}, []string{}, "c-1", "u-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery(`UPDATE comps`).
		WithArgs("Renamed", []string{}, []string{}, []string{}, []string{}, "c-9", "u-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}))

	repo := NewCompRepository(mock)
	c := &entity.Comp{ID: "c-1", Name: "Renamed", CreatedBy: "u-1"}
	require.NoError(t, repo.Update(context.Background(), c))
	assert.Equal(t, created, c.CreatedAt)

	missing := &entity.Comp{ID: "c-9", Name: "Renamed", CreatedBy: "u-1"}
	assert.ErrorIs(t, repo.Update(context.Background(), missing), repository.ErrCompNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompRepository_Delete(t *testing.T) {
	mock := newCompMock(t)

	mock.ExpectExec(`DELETE FROM comps`).WithArgs("c-1", "u-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM comps`).WithArgs("c-2", "u-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewCompRepository(mock)
	assert.NoError(t, repo.Delete(context.Background(), "c-1", "u-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "c-2", "u-1"), repository.ErrCompNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompRepository_SearchByName_EscapesPattern(t *testing.T) {
	mock := newCompMock(t)

	mock.ExpectQuery(`name ILIKE \$2`).
		WithArgs("u-1", `%100\%\_fun%`, 10).
		WillReturnRows(pgxmock.NewRows(compCols))

	got, err := NewCompRepository(mock).SearchByName(context.Background(), "u-1", "100%_fun", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
