package store

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Alifouanne/job-forge/pkg/models"
)

// WorldwideLocation is the sentinel meaning "no location restriction"; it
// disables the location filter entirely.
const WorldwideLocation = "worldwide"

// DefaultPageSize is the fixed number of listing rows per page.
const DefaultPageSize = 7

// ListingFilter describes one page of the public listing view.
type ListingFilter struct {
	Page     int      // 1-based; values < 1 normalize to 1
	PageSize int      // <= 0 normalizes to DefaultPageSize
	JobTypes []string // OR semantics; empty = no employment-type filter
	Location string   // exact match; "" or WorldwideLocation disables it
}

// Normalize clamps the filter to usable values.
func (f *ListingFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	types := f.JobTypes[:0]
	for _, t := range f.JobTypes {
		if t != "" {
			types = append(types, t)
		}
	}
	f.JobTypes = types
}

// hasLocationFilter reports whether the location filter applies.
func (f ListingFilter) hasLocationFilter() bool {
	return f.Location != "" && f.Location != WorldwideLocation
}

// buildListingQuery renders the page query for a normalized filter. Only
// ACTIVE posts are ever visible; rows come back most recent first.
func buildListingQuery(f ListingFilter) (string, []interface{}) {
	query := `SELECT jp.id, jp.title, jp.employment_type, jp.location,
		jp.salary_from, jp.salary_to, jp.created_at, c.name, c.logo_url
	FROM job_posts jp
	JOIN companies c ON c.id = jp.company_id
	WHERE jp.status = 'ACTIVE'`

	args := make([]interface{}, 0, 4)

	if len(f.JobTypes) > 0 {
		args = append(args, f.JobTypes)
		query += fmt.Sprintf(" AND jp.employment_type = ANY($%d)", len(args))
	}

	if f.hasLocationFilter() {
		args = append(args, f.Location)
		query += fmt.Sprintf(" AND jp.location = $%d", len(args))
	}

	args = append(args, (f.Page-1)*f.PageSize)
	query += fmt.Sprintf(" ORDER BY jp.created_at DESC OFFSET $%d", len(args))

	args = append(args, f.PageSize)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	return query, args
}

// activeCountQuery feeds the total_pages denominator. It counts every
// ACTIVE post regardless of the filters applied to the page query.
const activeCountQuery = `SELECT COUNT(*) FROM job_posts WHERE status = 'ACTIVE'`

// TotalPages computes ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ListActiveJobs returns one page of ACTIVE postings matching the filter,
// plus the total page count. The page and count queries run concurrently.
//
// The count denominator comes from all ACTIVE posts and ignores the
// employment-type and location filters, so TotalPages can overshoot when
// filters are applied. Kept as-is for parity with the shipped behavior;
// see DESIGN.md.
func (s *Store) ListActiveJobs(ctx context.Context, f ListingFilter) ([]models.JobSummary, int, error) {
	f.Normalize()

	var (
		jobs  []models.JobSummary
		count int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		query, args := buildListingQuery(f)
		rows, err := s.pool.Query(gctx, query, args...)
		if err != nil {
			return fmt.Errorf("listActiveJobs query: %w", err)
		}
		defer rows.Close()

		jobs = make([]models.JobSummary, 0, f.PageSize)
		for rows.Next() {
			var j models.JobSummary
			if err := rows.Scan(
				&j.ID, &j.Title, &j.EmploymentType, &j.Location,
				&j.SalaryFrom, &j.SalaryTo, &j.CreatedAt,
				&j.CompanyName, &j.CompanyLogo,
			); err != nil {
				return fmt.Errorf("listActiveJobs scan: %w", err)
			}
			jobs = append(jobs, j)
		}
		return rows.Err()
	})

	g.Go(func() error {
		err := s.pool.QueryRow(gctx, activeCountQuery).Scan(&count)
		if err != nil {
			return fmt.Errorf("listActiveJobs count: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return jobs, TotalPages(count, f.PageSize), nil
}
