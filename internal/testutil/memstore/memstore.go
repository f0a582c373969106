// Package memstore holds in-memory repositories for handler and router tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
	repo "github.com/oksasatya/bg-companion-api/internal/domain/repository"
)

type Users struct {
	mu   sync.Mutex
	byID map[string]entity.User
}

func NewUsers() *Users {
	return &Users{byID: map[string]entity.User{}}
}

func (s *Users) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return repo.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	s.byID[u.ID] = *u
	return nil
}

func (s *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

type Comps struct {
	mu    sync.Mutex
	byID  map[string]entity.Comp
	clock time.Time
}

func NewComps() *Comps {
	return &Comps{byID: map[string]entity.Comp{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *Comps) Create(_ context.Context, c *entity.Comp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// strictly increasing timestamps keep newest-first ordering stable
	s.clock = s.clock.Add(time.Second)
	c.ID = uuid.NewString()
	c.CreatedAt = s.clock
	s.byID[c.ID] = *c
	return nil
}

func (s *Comps) ListByOwner(_ context.Context, ownerID string) ([]entity.Comp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(ownerID, "", 0), nil
}

func (s *Comps) GetByIDForOwner(_ context.Context, id, ownerID string) (*entity.Comp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, repo.ErrCompNotFound
	}
	return &c, nil
}

func (s *Comps) Update(_ context.Context, c *entity.Comp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.byID[c.ID]
	if !ok || old.CreatedBy != c.CreatedBy {
		return repo.ErrCompNotFound
	}
	c.CreatedAt = old.CreatedAt
	s.byID[c.ID] = *c
	return nil
}

func (s *Comps) Delete(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok || c.CreatedBy != ownerID {
		return repo.ErrCompNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *Comps) SearchByName(_ context.Context, ownerID, query string, limit int) ([]entity.Comp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(ownerID, query, limit), nil
}

func (s *Comps) filter(ownerID, query string, limit int) []entity.Comp {
	out := []entity.Comp{}
	q := strings.ToLower(query)
	for _, c := range s.byID {
		if c.CreatedBy == ownerID && strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
