package sqlstore_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garibaycarlos/core-code-camp/internal/config"
	"github.com/garibaycarlos/core-code-camp/internal/domain"
	"github.com/garibaycarlos/core-code-camp/internal/platform/sqlite"
	"github.com/garibaycarlos/core-code-camp/internal/platform/sqlstore"
	"github.com/garibaycarlos/core-code-camp/internal/store"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.DatabaseConfig{
		Driver:       "sqlite",
		URL:          filepath.Join(t.TempDir(), "camps.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}

	db, err := sqlite.Open(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dialect := sqlite.Dialect()
	require.NoError(t, sqlstore.Migrate(ctx, db, dialect, logger))

	return sqlstore.New(db, dialect, logger)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCamp(moniker string, date time.Time) *domain.Camp {
	return &domain.Camp{
		Moniker:   moniker,
		Name:      "Camp " + moniker,
		EventDate: date,
		Length:    1,
		Location:  &domain.Location{VenueName: "Tech Hall", CityTown: "Atlanta"},
	}
}

// seed saves camps through a fresh repository.
func seed(t *testing.T, s *sqlstore.Store, camps ...*domain.Camp) {
	t.Helper()
	repo := s.NewCampRepository()
	for _, c := range camps {
		repo.Add(c)
	}
	saved, err := repo.SaveChanges(context.Background())
	require.NoError(t, err)
	require.True(t, saved)
}

func TestCampRepository_GetCampNotFound(t *testing.T) {
	s := newTestStore(t)

	camp, err := s.NewCampRepository().GetCamp(context.Background(), "NOPE", false)

	assert.Nil(t, camp)
	assert.ErrorIs(t, err, store.ErrCampNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestCampRepository_AddAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	camp := newCamp("ATL2024", time.Date(2024, 10, 12, 9, 30, 0, 0, time.UTC))
	camp.Length = 2
	seed(t, s, camp)

	assert.NotZero(t, camp.ID, "camp id should be assigned after save")
	assert.NotZero(t, camp.Location.ID, "location id should be assigned after save")

	got, err := s.NewCampRepository().GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)

	assert.Equal(t, camp.ID, got.ID)
	assert.Equal(t, "Camp ATL2024", got.Name)
	assert.Equal(t, 2, got.Length)
	assert.True(t, day(2024, time.October, 12).Equal(got.EventDate))
	require.NotNil(t, got.Location)
	assert.Equal(t, "Tech Hall", got.Location.VenueName)
	assert.Equal(t, "Atlanta", got.Location.CityTown)
	assert.Nil(t, got.Talks, "talks are only loaded on request")
}

func TestCampRepository_SaveChangesWithoutChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, newCamp("ATL2024", day(2024, time.October, 12)))

	repo := s.NewCampRepository()
	_, err := repo.GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)

	saved, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestCampRepository_DuplicateMoniker(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, newCamp("ATL2024", day(2024, time.October, 12)))

	repo := s.NewCampRepository()
	fresh := newCamp("NEW2025", day(2025, time.May, 1))
	repo.Add(fresh)
	repo.Add(newCamp("ATL2024", day(2025, time.June, 1)))

	saved, err := repo.SaveChanges(ctx)

	assert.False(t, saved)
	assert.ErrorIs(t, err, store.ErrMonikerExists)
	assert.True(t, store.IsDuplicateError(err))
	assert.Zero(t, fresh.ID, "ids must not be assigned when the transaction rolls back")

	_, err = s.NewCampRepository().GetCamp(ctx, "NEW2025", false)
	assert.ErrorIs(t, err, store.ErrCampNotFound, "a failed save must not write anything")
}

func TestCampRepository_InvalidCampIsRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	repo := s.NewCampRepository()
	bad := newCamp("BAD", day(2024, time.January, 1))
	bad.Length = domain.MaxCampLength + 1
	repo.Add(bad)

	saved, err := repo.SaveChanges(ctx)

	assert.False(t, saved)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrInvalidLength)
}

func TestCampRepository_UpdateTrackedCamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, newCamp("ATL2024", day(2024, time.October, 12)))

	repo := s.NewCampRepository()
	camp, err := repo.GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)

	camp.Name = "Atlanta Code Camp"
	camp.Length = 3
	camp.EventDate = day(2024, time.November, 2)
	camp.Location.VenueName = "Convention Center"

	saved, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.True(t, saved)

	again, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.False(t, again, "saved state becomes the new baseline")

	got, err := s.NewCampRepository().GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)
	assert.Equal(t, "Atlanta Code Camp", got.Name)
	assert.Equal(t, 3, got.Length)
	assert.True(t, day(2024, time.November, 2).Equal(got.EventDate))
	assert.Equal(t, "Convention Center", got.Location.VenueName)
}

func TestCampRepository_UpdateAddsMissingLocation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	camp := newCamp("NOLOC", day(2024, time.March, 3))
	camp.Location = nil
	seed(t, s, camp)

	repo := s.NewCampRepository()
	loaded, err := repo.GetCamp(ctx, "NOLOC", false)
	require.NoError(t, err)
	assert.Nil(t, loaded.Location)

	loaded.Location = &domain.Location{VenueName: "Annex"}
	saved, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.NotZero(t, loaded.Location.ID)

	got, err := s.NewCampRepository().GetCamp(ctx, "NOLOC", false)
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Annex", got.Location.VenueName)
}

func TestCampRepository_IdentityMap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, newCamp("ATL2024", day(2024, time.October, 12)))

	repo := s.NewCampRepository()
	first, err := repo.GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)
	all, err := repo.GetAllCamps(ctx, false)
	require.NoError(t, err)

	require.Len(t, all, 1)
	assert.Same(t, first, all[0])
}

func TestCampRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doomed := newCamp("ATL2024", day(2024, time.October, 12))
	doomed.Talks = []*domain.Talk{{Title: "Go in production", Camp: doomed}}
	survivor := newCamp("SEA2024", day(2024, time.October, 12))
	survivor.Talks = []*domain.Talk{{Title: "Kept", Camp: survivor}}
	seed(t, s, doomed, survivor)

	repo := s.NewCampRepository()
	camp, err := repo.GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)
	repo.Delete(camp)

	saved, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.True(t, saved)

	_, err = s.NewCampRepository().GetCamp(ctx, "ATL2024", false)
	assert.ErrorIs(t, err, store.ErrCampNotFound)

	kept, err := s.NewCampRepository().GetCamp(ctx, "SEA2024", true)
	require.NoError(t, err)
	require.Len(t, kept.Talks, 1)
	assert.Equal(t, "Kept", kept.Talks[0].Title)
}

func TestCampRepository_DeleteUnsavedCampUnstagesIt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	repo := s.NewCampRepository()
	camp := newCamp("TMP", day(2024, time.January, 1))
	repo.Add(camp)
	repo.Delete(camp)

	saved, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestCampRepository_DeleteAlreadyRemovedCamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, newCamp("ATL2024", day(2024, time.October, 12)))

	first := s.NewCampRepository()
	a, err := first.GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)
	second := s.NewCampRepository()
	b, err := second.GetCamp(ctx, "ATL2024", false)
	require.NoError(t, err)

	first.Delete(a)
	saved, err := first.SaveChanges(ctx)
	require.NoError(t, err)
	require.True(t, saved)

	second.Delete(b)
	saved, err = second.SaveChanges(ctx)
	require.NoError(t, err)
	assert.False(t, saved, "nothing is written when the row is already gone")
}

func TestCampRepository_GetCampsByEventDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s,
		newCamp("A", day(2024, time.October, 12)),
		newCamp("B", day(2024, time.October, 12)),
		newCamp("C", day(2024, time.October, 13)),
		newCamp("D", day(2024, time.October, 11)),
	)

	tests := []struct {
		name     string
		date     time.Time
		monikers []string
	}{
		{
			name:     "midnight",
			date:     day(2024, time.October, 12),
			monikers: []string{"A", "B"},
		},
		{
			name:     "time of day is ignored",
			date:     time.Date(2024, time.October, 12, 15, 45, 0, 0, time.UTC),
			monikers: []string{"A", "B"},
		},
		{
			name:     "single match",
			date:     day(2024, time.October, 13),
			monikers: []string{"C"},
		},
		{
			name:     "no match",
			date:     day(2023, time.January, 1),
			monikers: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			camps, err := s.NewCampRepository().GetCampsByEventDate(ctx, tc.date, false)
			require.NoError(t, err)

			var got []string
			for _, c := range camps {
				got = append(got, c.Moniker)
			}
			assert.ElementsMatch(t, tc.monikers, got)
		})
	}
}

func TestCampRepository_GetAllCampsOrderedByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s,
		newCamp("OLD", day(2020, time.January, 1)),
		newCamp("NEW", day(2025, time.January, 1)),
		newCamp("MID", day(2022, time.January, 1)),
	)

	camps, err := s.NewCampRepository().GetAllCamps(ctx, false)
	require.NoError(t, err)
	require.Len(t, camps, 3)

	assert.Equal(t, "NEW", camps[0].Moniker)
	assert.Equal(t, "MID", camps[1].Moniker)
	assert.Equal(t, "OLD", camps[2].Moniker)
}

func TestCampRepository_IncludeTalks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	speaker := &domain.Speaker{FirstName: "Ada", LastName: "Lovelace", GitHub: "ada"}
	camp := newCamp("ATL2024", day(2024, time.October, 12))
	camp.Talks = []*domain.Talk{
		{Camp: camp, Title: "Engines", Abstract: "Analytical", Level: 300, Speaker: speaker},
		{Camp: camp, Title: "Notes", Level: 100, Speaker: speaker},
		{Camp: camp, Title: "Unassigned", Level: 200},
	}
	seed(t, s, camp)
	assert.NotZero(t, speaker.ID)

	got, err := s.NewCampRepository().GetCamp(ctx, "ATL2024", true)
	require.NoError(t, err)
	require.Len(t, got.Talks, 3)

	engines := got.Talks[0]
	assert.Equal(t, "Engines", engines.Title)
	assert.Equal(t, "Analytical", engines.Abstract)
	assert.Equal(t, 300, engines.Level)
	assert.Same(t, got, engines.Camp)
	require.NotNil(t, engines.Speaker)
	assert.Equal(t, "Lovelace", engines.Speaker.LastName)
	assert.Equal(t, "ada", engines.Speaker.GitHub)
	assert.Same(t, engines.Speaker, got.Talks[1].Speaker, "shared speakers are loaded once")
	assert.Nil(t, got.Talks[2].Speaker)

	all, err := s.NewCampRepository().GetAllCamps(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Talks, 3)
}

func TestCampRepository_IncludeTalksWithoutTalks(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, newCamp("EMPTY", day(2024, time.October, 12)))

	got, err := s.NewCampRepository().GetCamp(context.Background(), "EMPTY", true)
	require.NoError(t, err)
	assert.NotNil(t, got.Talks)
	assert.Empty(t, got.Talks)
}

func TestCampRepository_OrphanTalkIsRejected(t *testing.T) {
	s := newTestStore(t)

	repo := s.NewCampRepository()
	camp := newCamp("ATL2024", day(2024, time.October, 12))
	camp.Talks = []*domain.Talk{{Title: "Lost"}}
	repo.Add(camp)

	saved, err := repo.SaveChanges(context.Background())
	assert.False(t, saved)
	assert.ErrorIs(t, err, domain.ErrOrphanTalk)
}
