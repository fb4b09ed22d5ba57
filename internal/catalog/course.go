// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
Package catalog implements the public course catalog.

It defines the Course entity, its PostgreSQL persistence, and a read-through
Redis cache for the two hot read paths (published list, single course by
slug).

# Architecture

The catalog shares the Redis instance with the session store but owns its own
"catalog:" key namespace. Cached payloads are full JSON snapshots with a short
TTL; writes invalidate eagerly, expiry catches everything else.
*/
package catalog

import "time"

// # Domain Entities

// Course represents a sellable course in the Edora catalog.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	Price       float64   `json:"price"`
	IsPublished bool      `json:"isPublished"`
	Purchased   int       `json:"purchased"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldLevel       = "level"
	FieldPrice       = "price"
)

// # Constraints

const (
	// TitleMaxLen bounds course titles for list views and slugs.
	TitleMaxLen = 200
)
