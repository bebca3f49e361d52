package domain

import "strings"

// Talk is a session given at a camp. The camp owns its talks; Camp here is
// only a back-reference. Speaker is optional.
type Talk struct {
	ID       int64
	Camp     *Camp
	Title    string
	Abstract string
	Level    int
	Speaker  *Speaker
}

// Validate checks that the talk has a title and is attached to a camp.
func (t *Talk) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTalkTitle)
	}
	if t.Camp == nil {
		return NewValidationError("camp", "is required", ErrOrphanTalk)
	}
	return nil
}

// Speaker presents talks. Speakers exist independently of camps and may be
// referenced by any number of talks.
type Speaker struct {
	ID         int64
	FirstName  string
	LastName   string
	MiddleName string
	Company    string
	CompanyURL string
	BlogURL    string
	Twitter    string
	GitHub     string
}
