package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"rostersync/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("congress")

const (
	DefaultBaseURL  = "https://api.congress.gov/v3"
	DefaultPageSize = 250
)

type Client struct {
	http     *resty.Client
	pageSize int
}

type ClientOptions struct {
	BaseURL  string
	APIKey   string
	PageSize int
}

// NewClient fails with ErrNoAPIKey before any network activity when the
// credential is missing. The key travels in the X-Api-Key header so it
// never shows up in logged or traced urls.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetHeader("x-api-key", opts.APIKey)
	client.SetHeader("accept", "application/json")
	client.SetHeader("user-agent", "rostersync/1.0")
	client.SetQueryParam("format", "json")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "congress/http")

	return &Client{
		http:     client,
		pageSize: opts.PageSize,
	}, nil
}

// ListAllMembers walks the paginated member list and returns every
// record in upstream order. It stops when a page comes back empty, when
// the pagination metadata reports no next page, or when a page is
// shorter than the requested page size. Results are all-or-nothing: a
// failure on any page discards the pages already fetched.
func (c *Client) ListAllMembers(ctx context.Context) ([]RawMember, error) {
	ctx, span := tracer.Start(ctx, "client:ListAllMembers")
	defer span.End()

	var all []RawMember
	offset := 0
	for page := 1; ; page++ {
		pageURL := fmt.Sprintf("%s/member?limit=%d&offset=%d", c.http.BaseURL, c.pageSize, offset)
		slog.InfoContext(ctx, "fetching members", "page", page, "offset", offset)

		res, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("limit", strconv.Itoa(c.pageSize)).
			SetQueryParam("offset", strconv.Itoa(offset)).
			Get("/member")
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch member page")
			return nil, &TransportError{URL: pageURL, Err: err}
		}
		if res.StatusCode() >= 400 {
			span.SetStatus(codes.Error, "member page returned error status")
			return nil, &TransportError{URL: pageURL, StatusCode: res.StatusCode()}
		}

		var body memberListResponse
		err = json.Unmarshal(res.Body(), &body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse member page")
			return nil, &TransportError{URL: pageURL, Err: err}
		}

		all = append(all, body.Members...)
		slog.InfoContext(
			ctx, "retrieved members",
			"page", page,
			"count", len(body.Members),
			"total", len(all),
		)

		if len(body.Members) == 0 {
			break
		}
		if body.Pagination.Next == "" {
			break
		}
		if len(body.Members) < c.pageSize {
			break
		}
		offset += c.pageSize
	}

	span.SetAttributes(attribute.Int("member_count", len(all)))
	return all, nil
}

// GetMember fetches the detail record for a single bioguide id.
func (c *Client) GetMember(ctx context.Context, bioguideID string) (RawMember, error) {
	ctx, span := tracer.Start(ctx, "client:GetMember")
	defer span.End()
	span.SetAttributes(attribute.String("bioguide_id", bioguideID))

	memberURL := fmt.Sprintf("%s/member/%s", c.http.BaseURL, bioguideID)
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("bioguideId", bioguideID).
		Get("/member/{bioguideId}")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch member detail")
		return RawMember{}, &TransportError{URL: memberURL, Err: err}
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "member detail returned error status")
		return RawMember{}, &TransportError{URL: memberURL, StatusCode: res.StatusCode()}
	}

	var body memberDetailResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse member detail")
		return RawMember{}, &TransportError{URL: memberURL, Err: err}
	}

	return body.Member, nil
}
