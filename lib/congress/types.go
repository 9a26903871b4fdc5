package congress

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey is returned by NewClient before any request is made when
// no credential was provided.
var ErrNoAPIKey = errors.New("no congress.gov api key configured")

// TransportError reports a page request that failed at the network or
// HTTP-status level.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RawMember is the superset of the member shapes the API returns. The
// list endpoint sends a combined "Last, First" name and a term history;
// the detail endpoint sends split name fields and a flat chamber. Every
// field is optional.
type RawMember struct {
	BioguideID string `json:"bioguideId"`
	Name       string `json:"name"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	PartyName  string `json:"partyName"`
	Party      string `json:"party"`
	State      string `json:"state"`
	// District arrives as a number, a numeric string, or null depending
	// on the source revision.
	District  any        `json:"district"`
	Chamber   string     `json:"chamber"`
	Terms     RawTerms   `json:"terms"`
	URL       string     `json:"url"`
	InOffice  *bool      `json:"inOffice"`
	Depiction *Depiction `json:"depiction"`
}

type RawTerms struct {
	Item []RawTerm `json:"item"`
}

type RawTerm struct {
	Chamber   string `json:"chamber"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

// Depiction is the official portrait reference. Attribution is an html
// fragment, not plain text.
type Depiction struct {
	ImageURL    string `json:"imageUrl"`
	Attribution string `json:"attribution"`
}

type memberListResponse struct {
	Members    []RawMember `json:"members"`
	Pagination struct {
		Count int    `json:"count"`
		Next  string `json:"next"`
	} `json:"pagination"`
}

type memberDetailResponse struct {
	Member RawMember `json:"member"`
}
