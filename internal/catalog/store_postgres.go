// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/dberr"
)

// # Course Repository

// PostgresCourseRepository implements the CourseRepository interface using pgx.
type PostgresCourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new PostgreSQL implementation of the CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *PostgresCourseRepository {
	return &PostgresCourseRepository{pool: pool}
}

/*
Create persists a new course record into the catalog.course table.

Description: The slug column is unique; a collision surfaces as a validation
conflict rather than an internal error.

Parameters:
  - context: context.Context
  - course: *Course

Returns:
  - error: Slug conflict or connectivity errors
*/
func (repository *PostgresCourseRepository) Create(context context.Context, course *Course) error {
	const query = `
		INSERT INTO catalog.course (
			id, title, slug, description, level, price, ispublished, purchased, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		course.ID,
		course.Title,
		course.Slug,
		course.Description,
		course.Level,
		course.Price,
		course.IsPublished,
		course.Purchased,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.ValidationError("A course with this title already exists")
		}
		return fmt.Errorf("postgres_course_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindBySlug retrieves a course by its unique slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Course: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresCourseRepository) FindBySlug(context context.Context, slug string) (*Course, error) {
	const query = `
		SELECT id, title, slug, description, level, price, ispublished, purchased, createdat, updatedat
		FROM catalog.course
		WHERE slug = $1`

	course := &Course{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&course.ID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.Level,
		&course.Price,
		&course.IsPublished,
		&course.Purchased,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Course")
		}
		return nil, fmt.Errorf("postgres_course_repo_find_by_slug_failed: %w", err)
	}

	return course, nil
}

/*
ListPublished returns all published courses ordered by creation time, newest first.

Parameters:
  - context: context.Context

Returns:
  - []*Course: Hydrated entities
  - error: Execution errors
*/
func (repository *PostgresCourseRepository) ListPublished(context context.Context) ([]*Course, error) {
	const query = `
		SELECT id, title, slug, description, level, price, ispublished, purchased, createdat, updatedat
		FROM catalog.course
		WHERE ispublished = TRUE
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_course_repo_list_failed: %w", err)
	}
	defer rows.Close()

	courses := make([]*Course, 0)
	for rows.Next() {
		course := &Course{}
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Slug,
			&course.Description,
			&course.Level,
			&course.Price,
			&course.IsPublished,
			&course.Purchased,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_course_repo_list_scan_failed: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_course_repo_list_rows_failed: %w", err)
	}

	return courses, nil
}
