package api

import (
	"context"
	"sync"
	"time"

	"github.com/garibaycarlos/core-code-camp/internal/domain"
	"github.com/garibaycarlos/core-code-camp/internal/store"
)

// fakeStore is an in-memory CampStore whose repositories follow the same
// unit-of-work rules as the SQL implementation. Errors can be injected per
// operation.
type fakeStore struct {
	mu     sync.Mutex
	camps  map[string]*domain.Camp
	nextID int64
	writes int

	getAllErr error
	getErr    error
	searchErr error
	saveErr   error
	saveNoop  bool
}

func newFakeStore(camps ...*domain.Camp) *fakeStore {
	s := &fakeStore{camps: make(map[string]*domain.Camp)}
	for _, c := range camps {
		s.nextID++
		c.ID = s.nextID
		s.camps[c.Moniker] = cloneCamp(c)
	}
	return s
}

func (s *fakeStore) NewCampRepository() store.CampRepository {
	return &fakeRepo{store: s, snapshots: make(map[*domain.Camp]campFields)}
}

func (s *fakeStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *fakeStore) has(moniker string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.camps[moniker]
	return ok
}

func cloneCamp(c *domain.Camp) *domain.Camp {
	out := *c
	if c.Location != nil {
		loc := *c.Location
		out.Location = &loc
	}
	if c.Talks != nil {
		out.Talks = make([]*domain.Talk, 0, len(c.Talks))
		for _, t := range c.Talks {
			talk := *t
			talk.Camp = &out
			out.Talks = append(out.Talks, &talk)
		}
	}
	return &out
}

// campFields is the comparable part of a camp.
type campFields struct {
	moniker   string
	name      string
	eventDate time.Time
	length    int
	venue     string
}

func fieldsOf(c *domain.Camp) campFields {
	return campFields{
		moniker:   c.Moniker,
		name:      c.Name,
		eventDate: c.EventDate,
		length:    c.Length,
		venue:     c.VenueName(),
	}
}

type fakeRepo struct {
	store     *fakeStore
	snapshots map[*domain.Camp]campFields
	added     []*domain.Camp
	deleted   []*domain.Camp
}

func (r *fakeRepo) load(c *domain.Camp, includeTalks bool) *domain.Camp {
	out := cloneCamp(c)
	if !includeTalks {
		out.Talks = nil
	} else if out.Talks == nil {
		out.Talks = []*domain.Talk{}
	}
	r.snapshots[out] = fieldsOf(out)
	return out
}

func (r *fakeRepo) GetAllCamps(_ context.Context, includeTalks bool) ([]*domain.Camp, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.getAllErr != nil {
		return nil, r.store.getAllErr
	}
	var out []*domain.Camp
	for _, c := range r.store.camps {
		out = append(out, r.load(c, includeTalks))
	}
	return out, nil
}

func (r *fakeRepo) GetCamp(_ context.Context, moniker string, includeTalks bool) (*domain.Camp, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.getErr != nil {
		return nil, r.store.getErr
	}
	c, ok := r.store.camps[moniker]
	if !ok {
		return nil, store.ErrCampNotFound
	}
	return r.load(c, includeTalks), nil
}

func (r *fakeRepo) GetCampsByEventDate(_ context.Context, date time.Time, includeTalks bool) ([]*domain.Camp, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.searchErr != nil {
		return nil, r.store.searchErr
	}
	want := domain.DayOf(date)
	var out []*domain.Camp
	for _, c := range r.store.camps {
		if c.EventDay().Equal(want) {
			out = append(out, r.load(c, includeTalks))
		}
	}
	return out, nil
}

func (r *fakeRepo) Add(c *domain.Camp) {
	r.added = append(r.added, c)
}

func (r *fakeRepo) Delete(c *domain.Camp) {
	r.deleted = append(r.deleted, c)
}

func (r *fakeRepo) SaveChanges(_ context.Context) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.saveErr != nil {
		return false, r.store.saveErr
	}
	if r.store.saveNoop {
		return false, nil
	}

	for _, c := range r.added {
		if _, exists := r.store.camps[c.Moniker]; exists {
			return false, store.ErrMonikerExists
		}
	}

	written := 0
	for _, c := range r.added {
		r.store.nextID++
		c.ID = r.store.nextID
		r.store.camps[c.Moniker] = cloneCamp(c)
		written++
	}
	for c, snap := range r.snapshots {
		if fieldsOf(c) == snap {
			continue
		}
		stored, ok := r.store.camps[snap.moniker]
		if !ok {
			continue
		}
		updated := cloneCamp(c)
		updated.Talks = stored.Talks
		delete(r.store.camps, snap.moniker)
		r.store.camps[updated.Moniker] = updated
		r.snapshots[c] = fieldsOf(c)
		written++
	}
	for _, c := range r.deleted {
		if _, ok := r.store.camps[c.Moniker]; ok {
			delete(r.store.camps, c.Moniker)
			written++
		}
	}

	r.added, r.deleted = nil, nil
	r.store.writes += written
	return written > 0, nil
}
