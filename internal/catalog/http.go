// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/edora-dev/edora/internal/platform/request"
	"github.com/edora-dev/edora/internal/platform/respond"
	"github.com/edora-dev/edora/internal/platform/sec"
	"github.com/edora-dev/edora/internal/platform/validate"
	"github.com/edora-dev/edora/internal/users/auth"
)

// Handler implements the HTTP layer for the course catalog.
type Handler struct {
	catalogService *Service
	gate           *auth.Gate
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service, gate *auth.Gate) *Handler {
	return &Handler{catalogService: service, gate: gate}
}

// Register mounts the catalog routes onto the given router.
//
// # Endpoints
//   - GET  /courses        : Lists published courses (public, cached).
//   - GET  /courses/{slug} : Returns one course (public, cached).
//   - POST /courses        : Creates a course (admin).
func (handler *Handler) Register(router chi.Router) {

	// Public reads
	router.Get("/courses", handler.listCourses)
	router.Get("/courses/{slug}", handler.getCourse)

	// Administration
	router.Group(func(r chi.Router) {
		r.Use(handler.gate.Authenticate)
		r.Use(handler.gate.RequireRole(sec.RoleAdmin))
		r.Post("/courses", handler.createCourse)
	})
}

// # Request Payloads

type createCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Level       string  `json:"level"`
	Price       float64 `json:"price"`
	IsPublished bool    `json:"isPublished"`
}

// # Response Payloads

type courseResponse struct {
	Success bool    `json:"success"`
	Course  *Course `json:"course"`
}

type coursesResponse struct {
	Success bool      `json:"success"`
	Courses []*Course `json:"courses"`
}

/*
ListCourses returns all published courses.

GET /api/v1/courses

Response:
  - 200: coursesResponse: Published courses, newest first
*/
func (handler *Handler) listCourses(writer http.ResponseWriter, request *http.Request) {
	courses, err := handler.catalogService.ListPublished(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, coursesResponse{Success: true, Courses: courses})
}

/*
GetCourse returns a single course by slug.

GET /api/v1/courses/{slug}

Response:
  - 200: courseResponse: The course
  - 400: Malformed slug
  - 404: No course with that slug
*/
func (handler *Handler) getCourse(writer http.ResponseWriter, request *http.Request) {
	courseSlug := requestutil.Param(request, "slug")

	validator := &validate.Validator{}
	validator.Required(FieldSlug, courseSlug).Slug(FieldSlug, courseSlug)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.catalogService.GetBySlug(request.Context(), courseSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, courseResponse{Success: true, Course: course})
}

/*
CreateCourse publishes a new course.

POST /api/v1/courses

Request:
  - Body: createCourseRequest (Title, Description, Level, Price, IsPublished)

Response:
  - 201: courseResponse: Created course
  - 400: Validation failure or slug conflict
  - 403: Caller is not an admin
*/
func (handler *Handler) createCourse(writer http.ResponseWriter, request *http.Request) {
	var input createCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, TitleMaxLen).
		Required(FieldDescription, input.Description).
		Custom(FieldPrice, input.Price < 0, "Must not be negative")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.catalogService.CreateCourse(request.Context(), CreateCourseInput{
		Title:       input.Title,
		Description: input.Description,
		Level:       input.Level,
		Price:       input.Price,
		IsPublished: input.IsPublished,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, courseResponse{Success: true, Course: course})
}
