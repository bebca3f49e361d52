package models

import "github.com/garibaycarlos/core-code-camp/internal/domain"

// CampToModel converts a camp and its loaded talks.
func CampToModel(c *domain.Camp) CampModel {
	m := CampModel{
		Name:      c.Name,
		Moniker:   c.Moniker,
		EventDate: NewDate(c.EventDate),
		Length:    c.Length,
		Venue:     c.VenueName(),
		Talks:     make([]TalkModel, 0, len(c.Talks)),
	}
	for _, t := range c.Talks {
		if t != nil {
			m.Talks = append(m.Talks, TalkToModel(t))
		}
	}
	return m
}

// CampsToModels converts camps in order.
func CampsToModels(camps []*domain.Camp) []CampModel {
	out := make([]CampModel, 0, len(camps))
	for _, c := range camps {
		out = append(out, CampToModel(c))
	}
	return out
}

// ToCamp builds a new camp from m. Talks come back without their Camp
// back-reference.
func ToCamp(m CampModel) *domain.Camp {
	c := &domain.Camp{
		Moniker:   m.Moniker,
		Name:      m.Name,
		EventDate: m.EventDate.Time,
		Length:    m.Length,
		Location:  &domain.Location{VenueName: m.Venue},
	}
	if len(m.Talks) > 0 {
		c.Talks = make([]*domain.Talk, 0, len(m.Talks))
		for _, t := range m.Talks {
			c.Talks = append(c.Talks, ToTalk(t))
		}
	}
	return c
}

// ApplyCampModel copies m's scalar fields and venue onto an existing camp.
// Talks are left alone.
func ApplyCampModel(m CampModel, c *domain.Camp) {
	c.Moniker = m.Moniker
	c.Name = m.Name
	c.EventDate = m.EventDate.Time
	c.Length = m.Length
	if c.Location == nil {
		c.Location = &domain.Location{}
	}
	c.Location.VenueName = m.Venue
}

// TalkToModel converts a talk, including its speaker.
func TalkToModel(t *domain.Talk) TalkModel {
	m := TalkModel{
		TalkID:   t.ID,
		Title:    t.Title,
		Abstract: t.Abstract,
		Level:    t.Level,
	}
	if t.Speaker != nil {
		s := SpeakerToModel(t.Speaker)
		m.Speaker = &s
	}
	return m
}

// ToTalk builds a talk from m. Camp and Speaker are never set.
func ToTalk(m TalkModel) *domain.Talk {
	return &domain.Talk{
		ID:       m.TalkID,
		Title:    m.Title,
		Abstract: m.Abstract,
		Level:    m.Level,
	}
}

// SpeakerToModel mirrors a speaker.
func SpeakerToModel(s *domain.Speaker) SpeakerModel {
	return SpeakerModel{
		SpeakerID:  s.ID,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		MiddleName: s.MiddleName,
		Company:    s.Company,
		CompanyURL: s.CompanyURL,
		BlogURL:    s.BlogURL,
		Twitter:    s.Twitter,
		GitHub:     s.GitHub,
	}
}

// ToSpeaker mirrors a speaker model.
func ToSpeaker(m SpeakerModel) *domain.Speaker {
	return &domain.Speaker{
		ID:         m.SpeakerID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		MiddleName: m.MiddleName,
		Company:    m.Company,
		CompanyURL: m.CompanyURL,
		BlogURL:    m.BlogURL,
		Twitter:    m.Twitter,
		GitHub:     m.GitHub,
	}
}
