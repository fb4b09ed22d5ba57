// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package catalog

import "context"

// # Course Data Access

// CourseRepository defines the data access contract for courses.
type CourseRepository interface {

	/*
		Create persists a new course.

		Parameters:
		  - context: context.Context
		  - course: *Course

		Returns:
		  - error: Slug conflicts or persistence failures
	*/
	Create(context context.Context, course *Course) error

	/*
		FindBySlug returns the course with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Course: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindBySlug(context context.Context, slug string) (*Course, error)

	/*
		ListPublished returns all published courses, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Course: Hydrated entities
		  - error: Database retrieval failures
	*/
	ListPublished(context context.Context) ([]*Course, error)
}
