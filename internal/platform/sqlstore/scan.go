package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/garibaycarlos/core-code-camp/internal/domain"
	"github.com/garibaycarlos/core-code-camp/internal/store"
)

// dayLayouts are the textual date forms drivers hand back.
var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// day scans a DATE column regardless of whether the driver returns it as a
// time.Time or as text.
type day struct {
	t time.Time
}

func (d *day) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.t = time.Time{}
		return nil
	case time.Time:
		d.t = domain.DayOf(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into a date", src)
	}
}

func (d *day) parse(s string) error {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.t = domain.DayOf(t)
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

// scanCamp reads one row produced by campColumns.
func scanCamp(rows *sql.Rows) (*domain.Camp, error) {
	var (
		camp       domain.Camp
		eventDate  day
		locationID sql.NullInt64
		venue      sql.NullString
		address1   sql.NullString
		address2   sql.NullString
		address3   sql.NullString
		cityTown   sql.NullString
		state      sql.NullString
		postal     sql.NullString
		country    sql.NullString
	)

	err := rows.Scan(
		&camp.ID, &camp.Moniker, &camp.Name, &eventDate, &camp.Length,
		&locationID, &venue, &address1, &address2, &address3,
		&cityTown, &state, &postal, &country,
	)
	if err != nil {
		return nil, store.NewStoreError("camp", "scan", "failed to read camp row", err)
	}

	camp.EventDate = eventDate.t
	if locationID.Valid {
		camp.Location = &domain.Location{
			ID:            locationID.Int64,
			VenueName:     venue.String,
			Address1:      address1.String,
			Address2:      address2.String,
			Address3:      address3.String,
			CityTown:      cityTown.String,
			StateProvince: state.String,
			PostalCode:    postal.String,
			Country:       country.String,
		}
	}
	return &camp, nil
}

// talkRow is one row of selectTalksForCamps.
type talkRow struct {
	campID  int64
	talk    *domain.Talk
	speaker *domain.Speaker
}

func scanTalk(rows *sql.Rows) (talkRow, error) {
	var (
		row        talkRow
		talk       domain.Talk
		speakerID  sql.NullInt64
		first      sql.NullString
		last       sql.NullString
		middle     sql.NullString
		company    sql.NullString
		companyURL sql.NullString
		blogURL    sql.NullString
		twitter    sql.NullString
		github     sql.NullString
	)

	err := rows.Scan(
		&talk.ID, &row.campID, &talk.Title, &talk.Abstract, &talk.Level,
		&speakerID, &first, &last, &middle, &company,
		&companyURL, &blogURL, &twitter, &github,
	)
	if err != nil {
		return talkRow{}, store.NewStoreError("talk", "scan", "failed to read talk row", err)
	}

	row.talk = &talk
	if speakerID.Valid {
		row.speaker = &domain.Speaker{
			ID:         speakerID.Int64,
			FirstName:  first.String,
			LastName:   last.String,
			MiddleName: middle.String,
			Company:    company.String,
			CompanyURL: companyURL.String,
			BlogURL:    blogURL.String,
			Twitter:    twitter.String,
			GitHub:     github.String,
		}
	}
	return row, nil
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
