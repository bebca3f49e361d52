package sqlstore

import "strings"

// All statements use '?' placeholders and go through Dialect.Rebind.
const (
	campColumns = `
		c.camp_id, c.moniker, c.name, c.event_date, c.length,
		l.location_id, l.venue_name, l.address1, l.address2, l.address3,
		l.city_town, l.state_province, l.postal_code, l.country`

	campFrom = `
		FROM camps c
		LEFT JOIN locations l ON l.location_id = c.location_id`

	selectAllCamps = `SELECT` + campColumns + campFrom + `
		ORDER BY c.event_date DESC, c.camp_id`

	selectCampByMoniker = `SELECT` + campColumns + campFrom + `
		WHERE c.moniker = ?`

	selectCampsByEventDate = `SELECT` + campColumns + campFrom + `
		WHERE c.event_date >= ? AND c.event_date < ?
		ORDER BY c.event_date DESC, c.camp_id`

	selectTalksForCampsPrefix = `
		SELECT t.talk_id, t.camp_id, t.title, t.abstract, t.level,
			s.speaker_id, s.first_name, s.last_name, s.middle_name, s.company,
			s.company_url, s.blog_url, s.twitter, s.github
		FROM talks t
		LEFT JOIN speakers s ON s.speaker_id = t.speaker_id
		WHERE t.camp_id IN (`

	insertLocation = `
		INSERT INTO locations (venue_name, address1, address2, address3,
			city_town, state_province, postal_code, country)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING location_id`

	updateLocation = `
		UPDATE locations
		SET venue_name = ?, address1 = ?, address2 = ?, address3 = ?,
			city_town = ?, state_province = ?, postal_code = ?, country = ?
		WHERE location_id = ?`

	deleteLocation = `DELETE FROM locations WHERE location_id = ?`

	insertCamp = `
		INSERT INTO camps (moniker, name, event_date, length, location_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING camp_id`

	updateCamp = `
		UPDATE camps
		SET moniker = ?, name = ?, event_date = ?, length = ?, location_id = ?
		WHERE camp_id = ?`

	deleteCamp = `DELETE FROM camps WHERE camp_id = ?`

	insertSpeaker = `
		INSERT INTO speakers (first_name, last_name, middle_name, company,
			company_url, blog_url, twitter, github)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING speaker_id`

	insertTalk = `
		INSERT INTO talks (camp_id, speaker_id, title, abstract, level)
		VALUES (?, ?, ?, ?, ?)
		RETURNING talk_id`

	deleteTalksForCamp = `DELETE FROM talks WHERE camp_id = ?`
)

// selectTalksForCamps builds the talk query for n camp ids.
func selectTalksForCamps(n int) string {
	var b strings.Builder
	b.WriteString(selectTalksForCampsPrefix)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('?')
	}
	b.WriteString(`)
		ORDER BY t.camp_id, t.talk_id`)
	return b.String()
}
