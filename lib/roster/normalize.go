package roster

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"rostersync/lib/congress"
	"rostersync/lib/textutil"
)

const senateChamber = "Senate"

// Normalize maps one raw api record onto the canonical schema. It is
// total: malformed or missing fields degrade to empty, nil, or false
// instead of failing the record.
func Normalize(ctx context.Context, raw congress.RawMember, now time.Time) Member {
	first := strings.TrimSpace(raw.FirstName)
	last := strings.TrimSpace(raw.LastName)
	name := textutil.CollapseWhitespace(raw.Name)
	if name != "" {
		last, first = textutil.SplitLastFirst(name)
	}

	term, hasTerm := currentTerm(raw.Terms.Item)

	chamber := strings.TrimSpace(raw.Chamber)
	if chamber == "" && hasTerm {
		chamber = strings.TrimSpace(term.Chamber)
	}

	isSenator := strings.Contains(chamber, senateChamber)
	title := TitleRepresentative
	if isSenator {
		title = TitleSenator
	}

	// senators never carry a district, whatever upstream says
	district := coerceDistrict(ctx, raw.District)
	if isSenator {
		district = nil
	}

	inOffice := hasTerm
	if raw.InOffice != nil {
		inOffice = *raw.InOffice
	}

	party := raw.PartyName
	if party == "" {
		party = raw.Party
	}

	return Member{
		ID:          raw.BioguideID,
		Name:        name,
		FirstName:   first,
		LastName:    last,
		Party:       party,
		State:       raw.State,
		District:    district,
		Chamber:     chamber,
		Title:       title,
		URL:         raw.URL,
		InOffice:    inOffice,
		LastUpdated: now,
	}
}

// NormalizeAll maps the collection in upstream order. Each record gets
// its own timestamp as it is processed.
func NormalizeAll(ctx context.Context, raws []congress.RawMember) []Member {
	members := make([]Member, len(raws))
	for i, raw := range raws {
		members[i] = Normalize(ctx, raw, time.Now())
	}
	return members
}

// currentTerm picks the last entry of the term history, the api's
// convention for the member's present term of service.
func currentTerm(terms []congress.RawTerm) (congress.RawTerm, bool) {
	if len(terms) == 0 {
		return congress.RawTerm{}, false
	}
	return terms[len(terms)-1], true
}

// coerceDistrict accepts the numeric, numeric-string, and null district
// forms seen across api revisions, truncating toward zero. Unparseable
// values degrade to nil.
func coerceDistrict(ctx context.Context, value any) *int {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		district := int(v)
		return &district
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			slog.WarnContext(ctx, "unparseable district", "district", v, "err", err)
			return nil
		}
		district := int(parsed)
		return &district
	default:
		slog.WarnContext(ctx, "unexpected district shape", "district", v)
		return nil
	}
}
