package store

import (
	"context"
	"time"

	"github.com/garibaycarlos/core-code-camp/internal/domain"
)

// CampRepository is a unit of work over camps. Reads return entities that
// the repository keeps tracking; Add and Delete only stage changes.
// Nothing reaches durable storage until SaveChanges succeeds.
//
// A CampRepository is not safe for concurrent use. Obtain a fresh one per
// request from a CampStore.
type CampRepository interface {
	// GetAllCamps returns every camp ordered by event date. When includeTalks
	// is set, each camp's talks are loaded together with their speakers.
	GetAllCamps(ctx context.Context, includeTalks bool) ([]*domain.Camp, error)

	// GetCamp returns the camp with the given moniker.
	// Returns ErrCampNotFound if no such camp exists.
	GetCamp(ctx context.Context, moniker string, includeTalks bool) (*domain.Camp, error)

	// GetCampsByEventDate returns the camps held on the calendar day of date.
	// An empty result is not an error.
	GetCampsByEventDate(ctx context.Context, date time.Time, includeTalks bool) ([]*domain.Camp, error)

	// Add stages a new camp, including its location and talks, for insertion.
	Add(camp *domain.Camp)

	// Delete stages a tracked camp for removal. Its talks and location go
	// with it.
	Delete(camp *domain.Camp)

	// SaveChanges writes every staged insert, every modification made to
	// tracked camps and every staged delete in a single transaction.
	// It reports whether anything was written.
	//
	// Returns ErrMonikerExists when an insert collides with an existing
	// moniker. On error nothing is written and staged changes are kept.
	SaveChanges(ctx context.Context) (bool, error)
}

// CampStore hands out camp repositories.
type CampStore interface {
	// NewCampRepository opens a new unit of work.
	NewCampRepository() CampRepository
}
