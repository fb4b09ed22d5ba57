// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package catalog_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edora-dev/edora/internal/catalog"
	"github.com/edora-dev/edora/internal/platform/apperr"
)

// # Test Doubles

// memoryCourseRepository is an in-memory CourseRepository that counts reads,
// so tests can prove when the cache absorbed a lookup.
type memoryCourseRepository struct {
	courses map[string]*catalog.Course // keyed by slug

	findCalls int
	listCalls int
}

func newMemoryCourseRepository() *memoryCourseRepository {
	return &memoryCourseRepository{courses: map[string]*catalog.Course{}}
}

func (repository *memoryCourseRepository) Create(_ context.Context, course *catalog.Course) error {
	if _, ok := repository.courses[course.Slug]; ok {
		return apperr.ValidationError("A course with this title already exists")
	}
	clone := *course
	repository.courses[course.Slug] = &clone
	return nil
}

func (repository *memoryCourseRepository) FindBySlug(_ context.Context, slug string) (*catalog.Course, error) {
	repository.findCalls++
	course, ok := repository.courses[slug]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	clone := *course
	return &clone, nil
}

func (repository *memoryCourseRepository) ListPublished(_ context.Context) ([]*catalog.Course, error) {
	repository.listCalls++
	var result []*catalog.Course
	for _, course := range repository.courses {
		if course.IsPublished {
			clone := *course
			result = append(result, &clone)
		}
	}
	return result, nil
}

// # Harness

type catalogHarness struct {
	service    *catalog.Service
	repository *memoryCourseRepository
	redis      *miniredis.Miniredis
}

func newCatalogHarness(t *testing.T) *catalogHarness {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repository := newMemoryCourseRepository()

	return &catalogHarness{
		service:    catalog.NewService(repository, client, slog.Default()),
		repository: repository,
		redis:      server,
	}
}

// # Creation

/*
TestCreateCourse tests slug derivation and persistence.
*/
func TestCreateCourse(t *testing.T) {
	h := newCatalogHarness(t)

	course, err := h.service.CreateCourse(context.Background(), catalog.CreateCourseInput{
		Title:       "Advanced Go Programming!",
		Description: "Generics, channels, and the runtime.",
		Level:       "advanced",
		Price:       49.99,
		IsPublished: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, "advanced-go-programming", course.Slug)
	assert.Equal(t, 49.99, course.Price)
}

/*
TestCreateCourse_InvalidTitle checks titles that slugify to nothing.
*/
func TestCreateCourse_InvalidTitle(t *testing.T) {
	h := newCatalogHarness(t)

	_, err := h.service.CreateCourse(context.Background(), catalog.CreateCourseInput{
		Title:       "!!!",
		Description: "No usable characters in the title.",
	})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestCreateCourse_DuplicateSlug checks that colliding titles conflict.
*/
func TestCreateCourse_DuplicateSlug(t *testing.T) {
	h := newCatalogHarness(t)
	ctx := context.Background()

	_, err := h.service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Go Basics", Description: "x"})
	require.NoError(t, err)

	// Different punctuation, same slug
	_, err = h.service.CreateCourse(ctx, catalog.CreateCourseInput{Title: "Go: Basics", Description: "x"})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

// # Cached Reads

/*
TestGetBySlug_ReadThrough tests the miss-then-hit cycle: the first read goes
to the database and populates the cache, the second is absorbed by it.
*/
func TestGetBySlug_ReadThrough(t *testing.T) {
	h := newCatalogHarness(t)
	ctx := context.Background()

	created, err := h.service.CreateCourse(ctx, catalog.CreateCourseInput{
		Title:       "Go Basics",
		Description: "Syntax and tooling.",
		IsPublished: true,
	})
	require.NoError(t, err)

	// 1. Miss: database read plus write-back
	first, err := h.service.GetBySlug(ctx, "go-basics")
	require.NoError(t, err)
	assert.Equal(t, created.ID, first.ID)
	assert.Equal(t, 1, h.repository.findCalls)
	assert.True(t, h.redis.Exists("catalog:course:go-basics"))

	// 2. Hit: the repository is not consulted again
	second, err := h.service.GetBySlug(ctx, "go-basics")
	require.NoError(t, err)
	assert.Equal(t, created.ID, second.ID)
	assert.Equal(t, 1, h.repository.findCalls)
}

/*
TestGetBySlug_NotFound checks the unknown-slug path.
*/
func TestGetBySlug_NotFound(t *testing.T) {
	h := newCatalogHarness(t)

	_, err := h.service.GetBySlug(context.Background(), "no-such-course")
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestGetBySlug_CorruptCacheEntry checks that a corrupt entry degrades to a
database read instead of an error.
*/
func TestGetBySlug_CorruptCacheEntry(t *testing.T) {
	h := newCatalogHarness(t)
	ctx := context.Background()

	_, err := h.service.CreateCourse(ctx, catalog.CreateCourseInput{
		Title:       "Go Basics",
		Description: "Syntax and tooling.",
		IsPublished: true,
	})
	require.NoError(t, err)

	require.NoError(t, h.redis.Set("catalog:course:go-basics", "{not-json"))

	course, err := h.service.GetBySlug(ctx, "go-basics")
	require.NoError(t, err)
	assert.Equal(t, "go-basics", course.Slug)
	assert.Equal(t, 1, h.repository.findCalls)
}

/*
TestListPublished_ReadThrough tests list caching and filtering of drafts.
*/
func TestListPublished_ReadThrough(t *testing.T) {
	h := newCatalogHarness(t)
	ctx := context.Background()

	_, err := h.service.CreateCourse(ctx, catalog.CreateCourseInput{
		Title: "Go Basics", Description: "x", IsPublished: true,
	})
	require.NoError(t, err)
	_, err = h.service.CreateCourse(ctx, catalog.CreateCourseInput{
		Title: "Unpublished Draft", Description: "x", IsPublished: false,
	})
	require.NoError(t, err)

	// 1. Miss: drafts are filtered out, result is cached
	first, err := h.service.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "go-basics", first[0].Slug)
	assert.Equal(t, 1, h.repository.listCalls)

	// 2. Hit
	second, err := h.service.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, h.repository.listCalls)
}

/*
TestCreateCourse_InvalidatesList checks that publishing a course evicts the
cached list so the next read sees it.
*/
func TestCreateCourse_InvalidatesList(t *testing.T) {
	h := newCatalogHarness(t)
	ctx := context.Background()

	_, err := h.service.CreateCourse(ctx, catalog.CreateCourseInput{
		Title: "Go Basics", Description: "x", IsPublished: true,
	})
	require.NoError(t, err)

	// Prime the list cache
	_, err = h.service.ListPublished(ctx)
	require.NoError(t, err)
	require.True(t, h.redis.Exists("catalog:published"))

	// A new course evicts it
	_, err = h.service.CreateCourse(ctx, catalog.CreateCourseInput{
		Title: "Advanced Go", Description: "x", IsPublished: true,
	})
	require.NoError(t, err)
	assert.False(t, h.redis.Exists("catalog:published"))

	// The next read repopulates with both courses
	courses, err := h.service.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}
