package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
	"github.com/oksasatya/bg-companion-api/internal/domain/repository"
)

const compColumns = `id, name, core_cards, addon_cards, hero_cards, spell_cards, created_at, created_by`

type CompRepository struct {
	db DBTX
}

func NewCompRepository(db DBTX) *CompRepository {
	return &CompRepository{db: db}
}

func (r *CompRepository) Create(ctx context.Context, c *entity.Comp) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO comps (name, core_cards, addon_cards, hero_cards, spell_cards, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.Name, nonNil(c.CoreCards), nonNil(c.AddonCards), nonNil(c.HeroCards), nonNil(c.SpellCards), c.CreatedBy)

	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("insert comp: %w", err)
	}
	return nil
}

func (r *CompRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Comp, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+compColumns+`
		FROM comps
		WHERE created_by = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list comps: %w", err)
	}
	return scanComps(rows)
}

func (r *CompRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Comp, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+compColumns+`
		FROM comps
		WHERE id = $1 AND created_by = $2
	`, id, ownerID)

	c, err := scanComp(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCompNotFound
		}
		return nil, fmt.Errorf("get comp: %w", err)
	}
	return c, nil
}

func (r *CompRepository) Update(ctx context.Context, c *entity.Comp) error {
	row := r.db.QueryRow(ctx, `
		UPDATE comps
		SET name = $1, core_cards = $2, addon_cards = $3, hero_cards = $4, spell_cards = $5
		WHERE id = $6 AND created_by = $7
		RETURNING created_at
	`, c.Name, nonNil(c.CoreCards), nonNil(c.AddonCards), nonNil(c.HeroCards), nonNil(c.SpellCards), c.ID, c.CreatedBy)

	if err := row.Scan(&c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrCompNotFound
		}
		return fmt.Errorf("update comp: %w", err)
	}
	return nil
}

func (r *CompRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM comps WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete comp: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrCompNotFound
	}
	return nil
}

// SearchByName is the fallback search when no search cluster is configured.
func (r *CompRepository) SearchByName(ctx context.Context, ownerID, query string, limit int) ([]entity.Comp, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+compColumns+`
		FROM comps
		WHERE created_by = $1 AND name ILIKE $2
		ORDER BY created_at DESC
		LIMIT $3
	`, ownerID, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search comps: %w", err)
	}
	return scanComps(rows)
}

func scanComp(row pgx.Row) (*entity.Comp, error) {
	c := &entity.Comp{}
	if err := row.Scan(&c.ID, &c.Name, &c.CoreCards, &c.AddonCards, &c.HeroCards, &c.SpellCards, &c.CreatedAt, &c.CreatedBy); err != nil {
		return nil, err
	}
	return c, nil
}

func scanComps(rows pgx.Rows) ([]entity.Comp, error) {
	defer rows.Close()
	out := make([]entity.Comp, 0)
	for rows.Next() {
		c, err := scanComp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comp: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comps: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ repository.CompRepository = (*CompRepository)(nil)
