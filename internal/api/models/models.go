package models

// CampModel is the camp as clients see it.
type CampModel struct {
	Name      string      `json:"name"      validate:"required,max=100"`
	Moniker   string      `json:"moniker"   validate:"required,max=50"`
	EventDate Date        `json:"eventDate"`
	Length    int         `json:"length"    validate:"gte=0,lte=100"`
	Venue     string      `json:"venue"     validate:"max=100"`
	Talks     []TalkModel `json:"talks"     validate:"omitempty,dive"`
}

// TalkModel is a talk as clients see it.
type TalkModel struct {
	TalkID   int64         `json:"talkId"`
	Title    string        `json:"title"    validate:"required,max=100"`
	Abstract string        `json:"abstract" validate:"max=4000"`
	Level    int           `json:"level"    validate:"gte=0"`
	Speaker  *SpeakerModel `json:"speaker"`
}

// SpeakerModel is a speaker as clients see it.
type SpeakerModel struct {
	SpeakerID  int64  `json:"speakerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	Company    string `json:"company"`
	CompanyURL string `json:"companyUrl"`
	BlogURL    string `json:"blogUrl"`
	Twitter    string `json:"twitter"`
	GitHub     string `json:"gitHub"`
}

// CampList is the body of the list endpoint.
type CampList struct {
	Count   int         `json:"count"`
	Results []CampModel `json:"results"`
}
