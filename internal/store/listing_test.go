package store

import (
	"strings"
	"testing"
)

func TestListingFilterNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ListingFilter
		wantPage int
		wantSize int
	}{
		{"zero page", ListingFilter{Page: 0}, 1, DefaultPageSize},
		{"negative page", ListingFilter{Page: -3}, 1, DefaultPageSize},
		{"explicit values", ListingFilter{Page: 4, PageSize: 10}, 4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			if tt.in.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.in.Page, tt.wantPage)
			}
			if tt.in.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", tt.in.PageSize, tt.wantSize)
			}
		})
	}
}

func TestListingFilterNormalize_DropsEmptyTypes(t *testing.T) {
	f := ListingFilter{JobTypes: []string{"", "full-time", "", "contract"}}
	f.Normalize()

	if len(f.JobTypes) != 2 || f.JobTypes[0] != "full-time" || f.JobTypes[1] != "contract" {
		t.Errorf("JobTypes = %v, want [full-time contract]", f.JobTypes)
	}
}

func TestBuildListingQuery_NoFilters(t *testing.T) {
	f := ListingFilter{Page: 1, PageSize: 7}
	query, args := buildListingQuery(f)

	if strings.Contains(query, "employment_type = ANY") {
		t.Error("query should not filter employment type when none requested")
	}
	if strings.Contains(query, "jp.location = $") {
		t.Error("query should not filter location when none requested")
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want offset and limit only", args)
	}
	if args[0] != 0 || args[1] != 7 {
		t.Errorf("offset/limit = %v/%v, want 0/7", args[0], args[1])
	}
}

func TestBuildListingQuery_AllFilters(t *testing.T) {
	f := ListingFilter{Page: 3, PageSize: 7, JobTypes: []string{"full-time", "contract"}, Location: "Berlin"}
	query, args := buildListingQuery(f)

	if !strings.Contains(query, "jp.employment_type = ANY($1)") {
		t.Errorf("query missing employment type filter: %s", query)
	}
	if !strings.Contains(query, "jp.location = $2") {
		t.Errorf("query missing location filter: %s", query)
	}
	if !strings.Contains(query, "ORDER BY jp.created_at DESC OFFSET $3") {
		t.Errorf("query missing ordered offset: %s", query)
	}
	if len(args) != 4 {
		t.Fatalf("len(args) = %d, want 4", len(args))
	}
	if args[2] != 14 {
		t.Errorf("offset = %v, want 14 for page 3 of 7", args[2])
	}
}

func TestBuildListingQuery_WorldwideSkipsLocation(t *testing.T) {
	for _, loc := range []string{"", WorldwideLocation} {
		f := ListingFilter{Page: 1, PageSize: 7, Location: loc}
		query, _ := buildListingQuery(f)
		if strings.Contains(query, "jp.location = $") {
			t.Errorf("location %q should disable the location filter", loc)
		}
	}
}

func TestCountQueryIgnoresFilters(t *testing.T) {
	// Pins the shipped paging behavior: the denominator counts all ACTIVE
	// posts, so total_pages can overshoot when filters are applied.
	if strings.Contains(activeCountQuery, "$") {
		t.Errorf("count query takes parameters, filters leaked in: %s", activeCountQuery)
	}
	if !strings.Contains(activeCountQuery, "status = 'ACTIVE'") {
		t.Errorf("count query must be scoped to ACTIVE posts: %s", activeCountQuery)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 7, 0},
		{1, 7, 1},
		{7, 7, 1},
		{8, 7, 2},
		{21, 7, 3},
		{22, 7, 4},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}
