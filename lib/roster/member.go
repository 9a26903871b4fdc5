package roster

import "time"

const (
	TitleSenator        = "Senator"
	TitleRepresentative = "Representative"
)

// Member is the canonical roster record. Struct field order fixes the
// json field order of written snapshots.
type Member struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Party       string    `json:"party"`
	State       string    `json:"state"`
	District    *int      `json:"district,omitempty"`
	Chamber     string    `json:"chamber"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	InOffice    bool      `json:"inOffice"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (m Member) IsSenator() bool {
	return m.Title == TitleSenator
}
