package snapshot

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"rostersync/lib/roster"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("snapshot")

// ErrNoData is returned for an empty roster; no files are touched.
var ErrNoData = errors.New("no data to process")

const (
	DefaultDir      = "data"
	DefaultBasename = "congress_members"
)

type WriteOptions struct {
	// Dir is created if absent.
	Dir      string
	Basename string
	// Date stamps the dated file pair. Zero means today.
	Date time.Time
}

// Result lists the four files a successful write produced.
type Result struct {
	DatedJSON  string
	DatedCSV   string
	LatestJSON string
	LatestCSV  string
}

func (r Result) Paths() []string {
	return []string{r.DatedJSON, r.DatedCSV, r.LatestJSON, r.LatestCSV}
}

// Write serializes the roster as a dated json/csv pair plus the
// always-overwritten latest pair. Both serializations are rendered in
// memory before the first file is touched, so a failure never leaves a
// partial snapshot behind.
func Write(ctx context.Context, opts WriteOptions, members []roster.Member) (Result, error) {
	ctx, span := tracer.Start(ctx, "snapshot:Write")
	defer span.End()

	if len(members) == 0 {
		return Result{}, ErrNoData
	}

	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.Basename == "" {
		opts.Basename = DefaultBasename
	}
	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	jsonData, err := json.MarshalIndent(members, "", "  ")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize roster json")
		return Result{}, err
	}
	jsonData = append(jsonData, '\n')

	csvData, err := renderCSV(members)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize roster csv")
		return Result{}, err
	}

	err = os.MkdirAll(opts.Dir, 0o755)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create output directory")
		return Result{}, err
	}

	stamp := date.Format("2006-01-02")
	result := Result{
		DatedJSON:  filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.json", opts.Basename, stamp)),
		DatedCSV:   filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.csv", opts.Basename, stamp)),
		LatestJSON: filepath.Join(opts.Dir, opts.Basename+"_latest.json"),
		LatestCSV:  filepath.Join(opts.Dir, opts.Basename+"_latest.csv"),
	}
	files := []struct {
		path string
		data []byte
	}{
		{result.DatedJSON, jsonData},
		{result.DatedCSV, csvData},
		{result.LatestJSON, jsonData},
		{result.LatestCSV, csvData},
	}
	for _, file := range files {
		err = os.WriteFile(file.path, file.data, 0o644)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to write snapshot file")
			return Result{}, err
		}
	}

	span.SetAttributes(attribute.Int("member_count", len(members)))
	return result, nil
}

// renderCSV emits one row per member. The district column appears only
// when the roster contains a representative; a nil district renders as
// an empty cell, never "0".
func renderCSV(members []roster.Member) ([]byte, error) {
	withDistrict := false
	for _, member := range members {
		if !member.IsSenator() {
			withDistrict = true
			break
		}
	}

	header := []string{"id", "name", "firstName", "lastName", "party", "state"}
	if withDistrict {
		header = append(header, "district")
	}
	header = append(header, "chamber", "title", "url", "inOffice", "lastUpdated")

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	err := writer.Write(header)
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		row := []string{
			member.ID,
			member.Name,
			member.FirstName,
			member.LastName,
			member.Party,
			member.State,
		}
		if withDistrict {
			district := ""
			if member.District != nil {
				district = strconv.Itoa(*member.District)
			}
			row = append(row, district)
		}
		row = append(row,
			member.Chamber,
			member.Title,
			member.URL,
			strconv.FormatBool(member.InOffice),
			member.LastUpdated.Format(time.RFC3339),
		)

		err = writer.Write(row)
		if err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
