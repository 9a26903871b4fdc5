package rosterstore

import (
	"context"
	"database/sql"
	"time"

	"rostersync/lib/roster"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("rosterstore")

// Store keeps a per-run history of the roster so membership changes
// between snapshots stay queryable.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type RunRecord struct {
	// Date is the run's YYYY-MM-DD stamp, matching the dated snapshot
	// files.
	Date      string
	FetchedAt time.Time
	Members   []roster.Member
}

// RecordRun stores one run's roster under its date. Recording the same
// date again replaces whatever that date already holds.
func (s Store) RecordRun(ctx context.Context, req RunRecord) error {
	ctx, span := tracer.Start(ctx, "RecordRun")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_date", req.Date),
		attribute.Int("member_count", len(req.Members)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM members WHERE run_date = ?`, req.Date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM runs WHERE run_date = ?`, req.Date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_date, member_count, fetched_at) VALUES (?, ?, ?)`,
		req.Date, len(req.Members), req.FetchedAt.Unix(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, member := range req.Members {
		var district any
		if member.District != nil {
			district = *member.District
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO members (id, run_date, name, party, state, chamber, title, district, in_office)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			member.ID, req.Date, member.Name, member.Party, member.State,
			member.Chamber, member.Title, district, member.InOffice,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	return tx.Commit()
}

type HistoryEntry struct {
	RunDate  string
	Name     string
	Party    string
	State    string
	Chamber  string
	Title    string
	District *int
	InOffice bool
}

// MemberHistory returns one entry per recorded run for a member, oldest
// run first.
func (s Store) MemberHistory(ctx context.Context, bioguideID string) ([]HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "MemberHistory")
	defer span.End()
	span.SetAttributes(attribute.String("bioguide_id", bioguideID))

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_date, name, party, state, chamber, title, district, in_office
		FROM members WHERE id = ? ORDER BY run_date ASC`,
		bioguideID,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var history []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var district sql.NullInt64
		err = rows.Scan(
			&entry.RunDate, &entry.Name, &entry.Party, &entry.State,
			&entry.Chamber, &entry.Title, &district, &entry.InOffice,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if district.Valid {
			value := int(district.Int64)
			entry.District = &value
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

type RunSummary struct {
	Date        string
	MemberCount int
	FetchedAt   time.Time
}

// Runs lists every recorded run, oldest first.
func (s Store) Runs(ctx context.Context) ([]RunSummary, error) {
	ctx, span := tracer.Start(ctx, "Runs")
	defer span.End()

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_date, member_count, fetched_at FROM runs ORDER BY run_date ASC`,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var fetchedAt int64
		err = rows.Scan(&run.Date, &run.MemberCount, &fetchedAt)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		run.FetchedAt = time.Unix(fetchedAt, 0)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
