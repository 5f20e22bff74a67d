package skyvia

import (
	"testing"
	"time"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

func TestPageParamsValidate(t *testing.T) {
	valid := []PageParams{
		{},
		{Skip: 0, Take: 1},
		{Skip: 100, Take: 200},
	}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v, want nil", p, err)
		}
	}

	invalid := []PageParams{
		{Skip: -1},
		{Take: 201},
		{Skip: -5, Take: 500},
	}
	for _, p := range invalid {
		err := p.Validate()
		typed := errors.As(err)
		if typed == nil || typed.Code() != errors.CodeValidation {
			t.Errorf("Validate(%+v) = %v, want a %s error", p, err, errors.CodeValidation)
		}
	}
}

func TestPageParamsNormalize(t *testing.T) {
	cases := []struct {
		in   PageParams
		want PageParams
	}{
		{PageParams{}, PageParams{Skip: 0, Take: DefaultTake}},
		{PageParams{Skip: 10, Take: 50}, PageParams{Skip: 10, Take: 50}},
		{PageParams{Skip: -3, Take: 0}, PageParams{Skip: 0, Take: DefaultTake}},
		{PageParams{Take: 9999}, PageParams{Take: MaxTake}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestPageQueryEncodesDefaults(t *testing.T) {
	q, err := pageQuery(PageParams{})
	if err != nil {
		t.Fatalf("pageQuery: %v", err)
	}
	if q.Get("skip") != "0" || q.Get("take") != "20" {
		t.Errorf("query = %v", q)
	}
}

func TestLogQueryDefaultsSortFields(t *testing.T) {
	values, err := LogQuery{}.values("date", "executionId")
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if values.Get("sortBy") != "date" {
		t.Errorf("sortBy = %q, want the first allowed field", values.Get("sortBy"))
	}
	if values.Get("sortOrder") != "asc" {
		t.Errorf("sortOrder = %q", values.Get("sortOrder"))
	}
	if values.Get("skip") != "0" || values.Get("take") != "20" {
		t.Errorf("paging = %v", values)
	}
	for _, absent := range []string{"startDate", "endDate", "failed"} {
		if values.Has(absent) {
			t.Errorf("%s should be omitted when unset", absent)
		}
	}
}

func TestLogQueryRejectsBadSortOrder(t *testing.T) {
	_, err := LogQuery{SortOrder: "upwards"}.values("date")
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected a %s error, got %v", errors.CodeValidation, err)
	}
}

func TestLogQueryRejectsDisallowedSortBy(t *testing.T) {
	_, err := LogQuery{SortBy: "color"}.values("date", "executionId")
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("expected a %s error, got %v", errors.CodeValidation, err)
	}
}

func TestLogQueryEncodesFilters(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	failed := true

	values, err := LogQuery{
		PageParams: PageParams{Skip: 40, Take: 40},
		SortOrder:  "desc",
		SortBy:     "executionId",
		StartDate:  &start,
		EndDate:    &end,
		Failed:     &failed,
	}.values("date", "executionId")
	if err != nil {
		t.Fatalf("values: %v", err)
	}

	if values.Get("startDate") != "2024-01-01T00:00:00Z" {
		t.Errorf("startDate = %q", values.Get("startDate"))
	}
	if values.Get("endDate") != "2024-01-31T23:59:59Z" {
		t.Errorf("endDate = %q", values.Get("endDate"))
	}
	if values.Get("failed") != "true" {
		t.Errorf("failed = %q", values.Get("failed"))
	}
	if values.Get("sortOrder") != "desc" || values.Get("sortBy") != "executionId" {
		t.Errorf("sort = %q %q", values.Get("sortOrder"), values.Get("sortBy"))
	}
}
