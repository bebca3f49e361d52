package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/garibaycarlos/core-code-camp/internal/domain"
	"github.com/garibaycarlos/core-code-camp/internal/platform/logger"
	"github.com/garibaycarlos/core-code-camp/internal/store"
)

// campSnapshot holds the persisted values of a tracked camp. SaveChanges
// compares it with the live entity to find modifications.
type campSnapshot struct {
	moniker   string
	name      string
	eventDate time.Time
	length    int
	location  domain.Location
	located   bool
}

func snapshotOf(c *domain.Camp) campSnapshot {
	s := campSnapshot{
		moniker:   c.Moniker,
		name:      c.Name,
		eventDate: c.EventDay(),
		length:    c.Length,
	}
	if c.Location != nil {
		s.location = *c.Location
		s.located = true
	}
	return s
}

// trackedCamp is a camp loaded by this repository.
type trackedCamp struct {
	camp     *domain.Camp
	snapshot campSnapshot
}

// CampRepository is a unit of work over camps stored in a SQL database.
// Not safe for concurrent use.
type CampRepository struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger

	// tracked is keyed by camp id and kept in load order.
	tracked  map[int64]*trackedCamp
	order    []int64
	added    []*domain.Camp
	deleted  []*domain.Camp
	deleteID map[int64]bool
}

var _ store.CampRepository = (*CampRepository)(nil)

func newCampRepository(db *sql.DB, dialect Dialect, logger *slog.Logger) *CampRepository {
	return &CampRepository{
		db:       db,
		dialect:  dialect,
		logger:   logger,
		tracked:  make(map[int64]*trackedCamp),
		deleteID: make(map[int64]bool),
	}
}

// GetAllCamps implements store.CampRepository.GetAllCamps.
func (r *CampRepository) GetAllCamps(ctx context.Context, includeTalks bool) ([]*domain.Camp, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)
	log.Debug("getting all camps", slog.Bool("include_talks", includeTalks))

	camps, err := r.queryCamps(ctx, includeTalks, selectAllCamps)
	if err != nil {
		log.Error("failed to get all camps", slog.String("error", err.Error()))
		return nil, err
	}
	return camps, nil
}

// GetCamp implements store.CampRepository.GetCamp.
func (r *CampRepository) GetCamp(ctx context.Context, moniker string, includeTalks bool) (*domain.Camp, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)
	log.Debug("getting camp",
		slog.String("moniker", moniker),
		slog.Bool("include_talks", includeTalks))

	camps, err := r.queryCamps(ctx, includeTalks, selectCampByMoniker, moniker)
	if err != nil {
		log.Error("failed to get camp",
			slog.String("moniker", moniker),
			slog.String("error", err.Error()))
		return nil, err
	}
	if len(camps) == 0 {
		return nil, store.ErrCampNotFound
	}
	return camps[0], nil
}

// GetCampsByEventDate implements store.CampRepository.GetCampsByEventDate.
func (r *CampRepository) GetCampsByEventDate(
	ctx context.Context,
	date time.Time,
	includeTalks bool,
) ([]*domain.Camp, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)
	start := domain.DayOf(date)
	end := start.AddDate(0, 0, 1)
	log.Debug("searching camps by event date",
		slog.String("date", start.Format(time.DateOnly)),
		slog.Bool("include_talks", includeTalks))

	camps, err := r.queryCamps(ctx, includeTalks, selectCampsByEventDate,
		r.dialect.EncodeDate(start), r.dialect.EncodeDate(end))
	if err != nil {
		log.Error("failed to search camps by event date", slog.String("error", err.Error()))
		return nil, err
	}
	return camps, nil
}

// Add implements store.CampRepository.Add.
func (r *CampRepository) Add(camp *domain.Camp) {
	if camp == nil {
		return
	}
	for _, c := range r.added {
		if c == camp {
			return
		}
	}
	r.added = append(r.added, camp)
}

// Delete implements store.CampRepository.Delete. Deleting a camp that was
// added but never saved just unstages it.
func (r *CampRepository) Delete(camp *domain.Camp) {
	if camp == nil {
		return
	}
	for i, c := range r.added {
		if c == camp {
			r.added = append(r.added[:i], r.added[i+1:]...)
			return
		}
	}
	if camp.ID == 0 || r.deleteID[camp.ID] {
		return
	}
	r.deleteID[camp.ID] = true
	r.deleted = append(r.deleted, camp)
}

// SaveChanges implements store.CampRepository.SaveChanges.
func (r *CampRepository) SaveChanges(ctx context.Context) (bool, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	for _, camp := range r.added {
		if err := validateForInsert(camp); err != nil {
			log.Warn("refusing to insert invalid camp",
				slog.String("moniker", camp.Moniker),
				slog.String("error", err.Error()))
			return false, err
		}
	}

	modified := r.modifiedCamps()
	for _, camp := range modified {
		if err := camp.Validate(); err != nil {
			return false, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	if len(r.added) == 0 && len(modified) == 0 && len(r.deleted) == 0 {
		log.Debug("no changes to save")
		return false, nil
	}

	// Generated ids are only applied once the transaction has committed.
	var (
		written int64
		assign  []func()
	)
	err := store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, camp := range r.added {
			n, fns, err := r.insertCamp(ctx, tx, camp)
			if err != nil {
				return err
			}
			written += n
			assign = append(assign, fns...)
		}
		for _, camp := range modified {
			n, fns, err := r.updateCamp(ctx, tx, camp)
			if err != nil {
				return err
			}
			written += n
			assign = append(assign, fns...)
		}
		for _, camp := range r.deleted {
			n, err := r.deleteCamp(ctx, tx, camp)
			if err != nil {
				return err
			}
			written += n
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save changes",
			slog.Int("added", len(r.added)),
			slog.Int("modified", len(modified)),
			slog.Int("deleted", len(r.deleted)),
			slog.String("error", err.Error()))
		return false, err
	}

	for _, fn := range assign {
		fn()
	}
	r.acceptChanges()

	log.Info("saved changes", slog.Int64("rows_written", written))
	return written > 0, nil
}

// acceptChanges makes the just-saved state the new baseline.
func (r *CampRepository) acceptChanges() {
	for _, camp := range r.deleted {
		delete(r.tracked, camp.ID)
	}
	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.tracked[id]; ok {
			kept = append(kept, id)
		}
	}
	r.order = kept

	for _, tc := range r.tracked {
		tc.snapshot = snapshotOf(tc.camp)
	}
	for _, camp := range r.added {
		r.track(camp)
	}

	r.added = nil
	r.deleted = nil
	r.deleteID = make(map[int64]bool)
}

// modifiedCamps returns tracked camps, not staged for deletion, whose
// values differ from what was loaded.
func (r *CampRepository) modifiedCamps() []*domain.Camp {
	var modified []*domain.Camp
	for _, id := range r.order {
		tc := r.tracked[id]
		if r.deleteID[id] {
			continue
		}
		if snapshotOf(tc.camp) != tc.snapshot {
			modified = append(modified, tc.camp)
		}
	}
	return modified
}

// track registers camp, returning the instance already tracked under the
// same id if there is one.
func (r *CampRepository) track(camp *domain.Camp) *domain.Camp {
	if tc, ok := r.tracked[camp.ID]; ok {
		return tc.camp
	}
	r.tracked[camp.ID] = &trackedCamp{camp: camp, snapshot: snapshotOf(camp)}
	r.order = append(r.order, camp.ID)
	return camp
}

func validateForInsert(camp *domain.Camp) error {
	if err := camp.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	for _, talk := range camp.Talks {
		if talk == nil {
			continue
		}
		if err := talk.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}
	return nil
}

func (r *CampRepository) queryCamps(
	ctx context.Context,
	includeTalks bool,
	query string,
	args ...any,
) ([]*domain.Camp, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, r.dialect.MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var camps []*domain.Camp
	for rows.Next() {
		camp, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		camps = append(camps, r.track(camp))
	}
	if err := rows.Err(); err != nil {
		return nil, r.dialect.MapError(err)
	}

	if includeTalks && len(camps) > 0 {
		if err := r.loadTalks(ctx, r.db, camps); err != nil {
			return nil, err
		}
	}
	return camps, nil
}

// loadTalks replaces the talks of every camp with what is stored, speakers
// included. Speakers shared between talks are loaded once.
func (r *CampRepository) loadTalks(ctx context.Context, db store.DBTX, camps []*domain.Camp) error {
	byID := make(map[int64]*domain.Camp, len(camps))
	args := make([]any, 0, len(camps))
	for _, camp := range camps {
		if _, seen := byID[camp.ID]; seen {
			continue
		}
		byID[camp.ID] = camp
		camp.Talks = []*domain.Talk{}
		args = append(args, camp.ID)
	}

	rows, err := db.QueryContext(ctx, r.dialect.Rebind(selectTalksForCamps(len(args))), args...)
	if err != nil {
		return r.dialect.MapError(err)
	}
	defer func() { _ = rows.Close() }()

	speakers := make(map[int64]*domain.Speaker)
	for rows.Next() {
		row, err := scanTalk(rows)
		if err != nil {
			return err
		}
		if row.speaker != nil {
			if s, ok := speakers[row.speaker.ID]; ok {
				row.speaker = s
			} else {
				speakers[row.speaker.ID] = row.speaker
			}
			row.talk.Speaker = row.speaker
		}
		camp := byID[row.campID]
		row.talk.Camp = camp
		camp.Talks = append(camp.Talks, row.talk)
	}
	if err := rows.Err(); err != nil {
		return r.dialect.MapError(err)
	}
	return nil
}

func (r *CampRepository) insertCamp(ctx context.Context, tx store.DBTX, camp *domain.Camp) (int64, []func(), error) {
	var (
		written    int64
		assign     []func()
		locationID int64
	)

	if camp.Location != nil {
		id, err := r.insertLocation(ctx, tx, camp.Location)
		if err != nil {
			return 0, nil, err
		}
		locationID = id
		loc := camp.Location
		assign = append(assign, func() { loc.ID = id })
		written++
	}

	var campID int64
	err := tx.QueryRowContext(ctx, r.dialect.Rebind(insertCamp),
		camp.Moniker, camp.Name, r.dialect.EncodeDate(camp.EventDay()), camp.Length, nullID(locationID),
	).Scan(&campID)
	if err != nil {
		return 0, nil, r.campError(err, "insert")
	}
	assign = append(assign, func() { camp.ID = campID })
	written++

	for _, talk := range camp.Talks {
		if talk == nil {
			continue
		}
		n, fns, err := r.insertTalk(ctx, tx, campID, talk)
		if err != nil {
			return 0, nil, err
		}
		written += n
		assign = append(assign, fns...)
	}
	return written, assign, nil
}

func (r *CampRepository) insertLocation(ctx context.Context, tx store.DBTX, loc *domain.Location) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, r.dialect.Rebind(insertLocation),
		loc.VenueName, loc.Address1, loc.Address2, loc.Address3,
		loc.CityTown, loc.StateProvince, loc.PostalCode, loc.Country,
	).Scan(&id)
	if err != nil {
		return 0, store.NewStoreError("location", "insert", "failed to insert location", r.dialect.MapError(err))
	}
	return id, nil
}

func (r *CampRepository) insertTalk(
	ctx context.Context,
	tx store.DBTX,
	campID int64,
	talk *domain.Talk,
) (int64, []func(), error) {
	var (
		written   int64
		assign    []func()
		speakerID int64
	)

	if sp := talk.Speaker; sp != nil {
		speakerID = sp.ID
		if speakerID == 0 {
			err := tx.QueryRowContext(ctx, r.dialect.Rebind(insertSpeaker),
				sp.FirstName, sp.LastName, sp.MiddleName, sp.Company,
				sp.CompanyURL, sp.BlogURL, sp.Twitter, sp.GitHub,
			).Scan(&speakerID)
			if err != nil {
				return 0, nil, store.NewStoreError("speaker", "insert", "failed to insert speaker", r.dialect.MapError(err))
			}
			id := speakerID
			assign = append(assign, func() { sp.ID = id })
			written++
		}
	}

	var talkID int64
	err := tx.QueryRowContext(ctx, r.dialect.Rebind(insertTalk),
		campID, nullID(speakerID), talk.Title, talk.Abstract, talk.Level,
	).Scan(&talkID)
	if err != nil {
		return 0, nil, store.NewStoreError("talk", "insert", "failed to insert talk", r.dialect.MapError(err))
	}
	assign = append(assign, func() { talk.ID = talkID })
	written++

	return written, assign, nil
}

func (r *CampRepository) updateCamp(ctx context.Context, tx store.DBTX, camp *domain.Camp) (int64, []func(), error) {
	var (
		written int64
		assign  []func()
	)

	locationID := int64(0)
	if loc := camp.Location; loc != nil {
		if loc.ID == 0 {
			id, err := r.insertLocation(ctx, tx, loc)
			if err != nil {
				return 0, nil, err
			}
			locationID = id
			assign = append(assign, func() { loc.ID = id })
			written++
		} else {
			locationID = loc.ID
			res, err := tx.ExecContext(ctx, r.dialect.Rebind(updateLocation),
				loc.VenueName, loc.Address1, loc.Address2, loc.Address3,
				loc.CityTown, loc.StateProvince, loc.PostalCode, loc.Country, loc.ID,
			)
			if err != nil {
				return 0, nil, store.NewStoreError("location", "update", "failed to update location", r.dialect.MapError(err))
			}
			written += rowsAffected(res)
		}
	}

	res, err := tx.ExecContext(ctx, r.dialect.Rebind(updateCamp),
		camp.Moniker, camp.Name, r.dialect.EncodeDate(camp.EventDay()), camp.Length, nullID(locationID), camp.ID,
	)
	if err != nil {
		return 0, nil, r.campError(err, "update")
	}
	written += rowsAffected(res)

	return written, assign, nil
}

func (r *CampRepository) deleteCamp(ctx context.Context, tx store.DBTX, camp *domain.Camp) (int64, error) {
	if _, err := tx.ExecContext(ctx, r.dialect.Rebind(deleteTalksForCamp), camp.ID); err != nil {
		return 0, store.NewStoreError("talk", "delete", "failed to delete talks", r.dialect.MapError(err))
	}

	res, err := tx.ExecContext(ctx, r.dialect.Rebind(deleteCamp), camp.ID)
	if err != nil {
		return 0, r.campError(err, "delete")
	}
	written := rowsAffected(res)

	if camp.Location != nil && camp.Location.ID != 0 {
		if _, err := tx.ExecContext(ctx, r.dialect.Rebind(deleteLocation), camp.Location.ID); err != nil {
			return 0, store.NewStoreError("location", "delete", "failed to delete location", r.dialect.MapError(err))
		}
	}
	return written, nil
}

// campError maps a failed camp write. Unique violations surface as
// store.ErrMonikerExists.
func (r *CampRepository) campError(err error, op string) error {
	mapped := r.dialect.MapError(err)
	if store.IsDuplicateError(mapped) {
		return fmt.Errorf("%w: %v", store.ErrMonikerExists, err)
	}
	return store.NewStoreError("camp", op, "failed to "+op+" camp", mapped)
}

// rowsAffected reports affected rows, treating drivers that cannot tell as one.
func rowsAffected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 1
	}
	return n
}
