package skyvia

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

const (
	// DefaultTake is the page size when the caller does not provide one.
	DefaultTake = 20
	// MaxTake caps how many items any single page can request.
	MaxTake = 200
)

// PageParams holds the skip/take offset pagination inputs shared by
// every listing endpoint. The zero value means "first page, default
// size".
type PageParams struct {
	Skip int `validate:"gte=0"`
	Take int `validate:"gte=0,lte=200"`
}

// Validate rejects out-of-range paging inputs before a request is ever
// issued. Take may be zero, which Normalize later replaces with
// DefaultTake.
func (p PageParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return errors.New(errors.CodeValidation,
			fmt.Sprintf("skip must be >= 0 and take between 0 and %d, where 0 applies the default of %d", MaxTake, DefaultTake)).
			WithDetails(map[string]any{"skip": p.Skip, "take": p.Take})
	}
	return nil
}

// Normalize fills in the default page size. Used after Validate for
// tool traffic and defensively for direct library callers.
func (p PageParams) Normalize() PageParams {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Take <= 0 {
		p.Take = DefaultTake
	}
	if p.Take > MaxTake {
		p.Take = MaxTake
	}
	return p
}

func (p PageParams) apply(q url.Values) {
	q.Set("skip", strconv.Itoa(p.Skip))
	q.Set("take", strconv.Itoa(p.Take))
}

// pageQuery validates, normalizes, and encodes plain paged listings.
func pageQuery(p PageParams) (url.Values, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	p.Normalize().apply(q)
	return q, nil
}

// LogQuery holds the filter and sort inputs shared by the execution,
// snapshot, and request-log listings. Absent optional filters are
// omitted from the query string entirely.
type LogQuery struct {
	PageParams
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	SortBy    string
	StartDate *time.Time
	EndDate   *time.Time
	Failed    *bool
}

// values validates the query and encodes it. allowedSortBy lists the
// per-resource sort fields; the first entry is the default.
func (q LogQuery) values(allowedSortBy ...string) (url.Values, error) {
	if err := q.PageParams.Validate(); err != nil {
		return nil, err
	}
	if err := validate.Struct(q); err != nil {
		return nil, errors.New(errors.CodeValidation, "sortOrder must be asc or desc").
			WithDetails(map[string]any{"sortOrder": q.SortOrder})
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = allowedSortBy[0]
	}
	allowed := false
	for _, field := range allowedSortBy {
		if sortBy == field {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.New(errors.CodeValidation,
			fmt.Sprintf("sortBy must be one of: %s", strings.Join(allowedSortBy, ", "))).
			WithDetails(map[string]any{"sortBy": q.SortBy})
	}

	sortOrder := q.SortOrder
	if sortOrder == "" {
		sortOrder = "asc"
	}

	values := url.Values{}
	q.PageParams.Normalize().apply(values)
	values.Set("sortOrder", sortOrder)
	values.Set("sortBy", sortBy)
	if q.StartDate != nil {
		values.Set("startDate", q.StartDate.Format(time.RFC3339))
	}
	if q.EndDate != nil {
		values.Set("endDate", q.EndDate.Format(time.RFC3339))
	}
	if q.Failed != nil {
		values.Set("failed", strconv.FormatBool(*q.Failed))
	}
	return values, nil
}
