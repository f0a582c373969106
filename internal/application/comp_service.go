package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
	repo "github.com/oksasatya/bg-companion-api/internal/domain/repository"
	"github.com/oksasatya/bg-companion-api/pkg/apperror"
)

var ErrCompNotFound = apperror.New(apperror.NotFound, "Comp not found")

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// CompIndexer keeps a search index of comps in sync.
type CompIndexer interface {
	Index(ctx context.Context, c *entity.Comp) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, ownerID, query string, size int) ([]entity.Comp, error)
}

// CompInput is the user-editable part of a comp.
type CompInput struct {
	Name       string
	CoreCards  []string
	AddonCards []string
	HeroCards  []string
	SpellCards []string
}

type CompService struct {
	Repo   repo.CompRepository
	Index  CompIndexer // optional
	Logger *logrus.Logger
}

func NewCompService(r repo.CompRepository, index CompIndexer, logger *logrus.Logger) *CompService {
	return &CompService{Repo: r, Index: index, Logger: logger}
}

func (s *CompService) Create(ctx context.Context, ownerID string, in CompInput) (*entity.Comp, error) {
	c := &entity.Comp{
		Name:       in.Name,
		CoreCards:  in.CoreCards,
		AddonCards: in.AddonCards,
		HeroCards:  in.HeroCards,
		SpellCards: in.SpellCards,
		CreatedBy:  ownerID,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to create comp", err)
	}
	s.index(ctx, c)
	return c, nil
}

func (s *CompService) ListMine(ctx context.Context, ownerID string) ([]entity.Comp, error) {
	comps, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to get your comps", err)
	}
	return comps, nil
}

func (s *CompService) Get(ctx context.Context, ownerID, id string) (*entity.Comp, error) {
	c, err := s.Repo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, mapCompErr(err, "Failed to get comp")
	}
	return c, nil
}

func (s *CompService) Update(ctx context.Context, ownerID, id string, in CompInput) (*entity.Comp, error) {
	c := &entity.Comp{
		ID:         id,
		Name:       in.Name,
		CoreCards:  in.CoreCards,
		AddonCards: in.AddonCards,
		HeroCards:  in.HeroCards,
		SpellCards: in.SpellCards,
		CreatedBy:  ownerID,
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, mapCompErr(err, "Failed to update comp")
	}
	s.index(ctx, c)
	return c, nil
}

func (s *CompService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		return mapCompErr(err, "Failed to delete comp")
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("comp_id", id).Warn("remove comp from index failed")
		}
	}
	return nil
}

// Search looks up the caller's comps by name, through the search index when
// one is configured and the database otherwise.
func (s *CompService) Search(ctx context.Context, ownerID, query string, size int) ([]entity.Comp, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.New(apperror.Validation, "Search query is required")
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	if s.Index != nil {
		comps, err := s.Index.Search(ctx, ownerID, query, size)
		if err == nil {
			return comps, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("comp index search failed, falling back to database")
		}
	}
	comps, err := s.Repo.SearchByName(ctx, ownerID, query, size)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to search comps", err)
	}
	return comps, nil
}

func (s *CompService) index(ctx context.Context, c *entity.Comp) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, c); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("comp_id", c.ID).Warn("index comp failed")
	}
}

func mapCompErr(err error, msg string) error {
	if errors.Is(err, repo.ErrCompNotFound) {
		return ErrCompNotFound
	}
	return apperror.Wrap(apperror.Internal, msg, err)
}
