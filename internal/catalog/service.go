// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edora-dev/edora/internal/platform/apperr"
	"github.com/edora-dev/edora/internal/platform/constants"
	"github.com/edora-dev/edora/pkg/slug"
	"github.com/edora-dev/edora/pkg/uuidv7"
)

// Service implements catalog use cases with a read-through cache.
//
// # Cache Discipline
//
// Reads consult Redis first and fall back to PostgreSQL on a miss, writing
// the result back with a short TTL. Cache failures degrade to database reads
// and are logged, never surfaced: the catalog must stay readable when Redis
// is down.
type Service struct {
	courseRepository CourseRepository
	cache            *redis.Client
	logger           *slog.Logger
}

// NewService constructs a new catalog [Service].
func NewService(courseRepo CourseRepository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		courseRepository: courseRepo,
		cache:            cache,
		logger:           logger,
	}
}

// # Course Creation

// CreateCourseInput holds the data required to publish a new course.
type CreateCourseInput struct {
	Title       string
	Description string
	Level       string
	Price       float64
	IsPublished bool
}

/*
CreateCourse persists a new course and invalidates the list cache.

Description: The slug is derived from the title. A title that slugifies into
an existing slug is rejected as a conflict.

Parameters:
  - context: context.Context
  - input: CreateCourseInput

Returns:
  - *Course: Created entity
  - err: Slug conflict or storage failures
*/
func (service *Service) CreateCourse(context context.Context, input CreateCourseInput) (*Course, error) {

	course := &Course{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		Level:       input.Level,
		Price:       input.Price,
		IsPublished: input.IsPublished,
	}

	if course.Slug == "" {
		return nil, apperr.ValidationError("Title does not produce a valid slug")
	}

	if err := service.courseRepository.Create(context, course); err != nil {
		return nil, err
	}

	// Eager invalidation; the entry cache has nothing for a new slug yet
	service.invalidate(context, constants.RedisKeyCatalogList)

	return course, nil
}

// # Cached Reads

/*
GetBySlug returns a single course, read through the cache.

Parameters:
  - context: context.Context
  - courseSlug: string

Returns:
  - *Course: Cached or freshly loaded entity
  - err: apperr.NotFound or storage failures
*/
func (service *Service) GetBySlug(context context.Context, courseSlug string) (*Course, error) {

	key := constants.RedisPrefixCatalogCourse + courseSlug

	// 1. Cache lookup
	payload, err := service.cache.Get(context, key).Bytes()
	if err == nil {
		course := &Course{}
		if unmarshalErr := json.Unmarshal(payload, course); unmarshalErr == nil {
			return course, nil
		}
		// A corrupt entry falls through to the database read
	} else if !errors.Is(err, redis.Nil) {
		service.logger.WarnContext(context, "catalog_cache_read_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	// 2. Database fallback
	course, err := service.courseRepository.FindBySlug(context, courseSlug)
	if err != nil {
		return nil, err
	}

	// 3. Write-back with TTL
	service.writeBack(context, key, course, constants.CatalogEntryTTL)

	return course, nil
}

/*
ListPublished returns all published courses, read through the cache.

Parameters:
  - context: context.Context

Returns:
  - []*Course: Cached or freshly loaded entities
  - err: Storage failures
*/
func (service *Service) ListPublished(context context.Context) ([]*Course, error) {

	// 1. Cache lookup
	payload, err := service.cache.Get(context, constants.RedisKeyCatalogList).Bytes()
	if err == nil {
		var courses []*Course
		if unmarshalErr := json.Unmarshal(payload, &courses); unmarshalErr == nil {
			return courses, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		service.logger.WarnContext(context, "catalog_cache_read_failed",
			slog.String("key", constants.RedisKeyCatalogList),
			slog.Any("error", err),
		)
	}

	// 2. Database fallback
	courses, err := service.courseRepository.ListPublished(context)
	if err != nil {
		return nil, err
	}

	// 3. Write-back with TTL
	service.writeBack(context, constants.RedisKeyCatalogList, courses, constants.CatalogListTTL)

	return courses, nil
}

// # Internal Helpers

// writeBack stores a JSON snapshot in the cache; failures are logged only.
func (service *Service) writeBack(context context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := service.cache.Set(context, key, payload, ttl).Err(); err != nil {
		service.logger.WarnContext(context, "catalog_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// invalidate removes a cache key; failures are logged only.
func (service *Service) invalidate(context context.Context, key string) {
	if err := service.cache.Del(context, key).Err(); err != nil {
		service.logger.WarnContext(context, "catalog_cache_invalidate_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
