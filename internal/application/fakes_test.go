package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
	repo "github.com/oksasatya/bg-companion-api/internal/domain/repository"
	"github.com/oksasatya/bg-companion-api/internal/infrastructure/blizzard"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	seq     int

	findErr   error
	createErr error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*entity.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	f.seq++
	u.ID = "u-" + strconv.Itoa(f.seq)
	u.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// plainHasher prefixes instead of hashing so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Compare(hash, plain string) bool  { return hash == "hashed:"+plain }

type fakeSigner struct {
	last map[string]any
	err  error
}

func (s *fakeSigner) Sign(claims map[string]any) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.last = claims
	return "token-for-" + claims["id"].(string), nil
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

type fakeComps struct {
	mu    sync.Mutex
	comps map[string]entity.Comp
	seq   int
	err   error
}

func newFakeComps() *fakeComps {
	return &fakeComps{comps: map[string]entity.Comp{}}
}

func (f *fakeComps) Create(_ context.Context, c *entity.Comp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.seq++
	c.ID = "c-" + strconv.Itoa(f.seq)
	c.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.seq, 0, time.UTC)
	f.comps[c.ID] = *c
	return nil
}

func (f *fakeComps) ListByOwner(_ context.Context, ownerID string) ([]entity.Comp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []entity.Comp{}
	for _, c := range f.comps {
		if c.CreatedBy == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComps) GetByIDForOwner(_ context.Context, id, ownerID string) (*entity.Comp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.comps[id]
	if !ok || c.CreatedBy != ownerID {
		return nil, repo.ErrCompNotFound
	}
	return &c, nil
}

func (f *fakeComps) Update(_ context.Context, c *entity.Comp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	old, ok := f.comps[c.ID]
	if !ok || old.CreatedBy != c.CreatedBy {
		return repo.ErrCompNotFound
	}
	c.CreatedAt = old.CreatedAt
	f.comps[c.ID] = *c
	return nil
}

func (f *fakeComps) Delete(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	c, ok := f.comps[id]
	if !ok || c.CreatedBy != ownerID {
		return repo.ErrCompNotFound
	}
	delete(f.comps, id)
	return nil
}

func (f *fakeComps) SearchByName(_ context.Context, ownerID, query string, limit int) ([]entity.Comp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []entity.Comp{}
	for _, c := range f.comps {
		if c.CreatedBy == ownerID && strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeIndex struct {
	indexed  []string
	removed  []string
	searched int
	lastSize int
	err      error
	hits     []entity.Comp
}

func (i *fakeIndex) Index(_ context.Context, c *entity.Comp) error {
	i.indexed = append(i.indexed, c.ID)
	return i.err
}

func (i *fakeIndex) Remove(_ context.Context, id string) error {
	i.removed = append(i.removed, id)
	return i.err
}

func (i *fakeIndex) Search(_ context.Context, _, _ string, size int) ([]entity.Comp, error) {
	i.searched++
	i.lastSize = size
	if i.err != nil {
		return nil, i.err
	}
	return i.hits, nil
}

type fakeCatalog struct {
	last blizzard.CardQuery
	body json.RawMessage
	err  error
}

func (c *fakeCatalog) FetchCards(_ context.Context, q blizzard.CardQuery) (json.RawMessage, error) {
	c.last = q
	return c.body, c.err
}

var errBoom = errors.New("connection refused")
