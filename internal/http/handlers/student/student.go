// Package student contains all HTTP handlers related to the Student
// resource.
//
// Handlers use the closure / factory pattern: each exported function
// accepts its dependencies (the storage.Storage interface) and returns
// an http.HandlerFunc. The factory runs once at route registration;
// the returned closure runs on every request and keeps the handler
// database-agnostic.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/aanand-mishra/student-management/internal/utils/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Default page window when the query string omits page/limit.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "first_name": "John", "last_name": "Doe", "email": "john@x.com", "gender": "Male" }
//
// Success response (201 Created): the full stored record, id included.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, unknown field,
//	                   failed validation, or duplicate email
//	500 Internal     — store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var in types.CreateStudent
		if !decodeBody(w, r, &in) {
			return
		}

		if err := validator.New().Struct(in); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		created, err := store.CreateStudent(r.Context(), in)
		if err != nil {
			writeStorageError(w, "creating student", err)
			return
		}

		slog.Info("student created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /students?page&limit&search
// Returns one page of students plus the total matching count.
//
// Query parameters:
//
//	page   — 1-based page number, >= 1 (default 1)
//	limit  — page size, >= 1 (default 10)
//	search — optional; case-insensitive substring match against
//	         first_name, last_name, or email
//
// Success response (200 OK):
//
//	{ "students": [...], "total": 42, "page": 1, "limit": 10 }
//
// total counts ALL matching records, not just the returned page.
// Note there is no upper bound on limit — a caller can request an
// arbitrarily large page and pull the whole collection in one query.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing students")

		page, err := positiveQueryParam(r, "page", defaultPage)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		limit, err := positiveQueryParam(r, "limit", defaultLimit)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		search := r.URL.Query().Get("search")

		students, total, err := store.ListStudents(r.Context(), page, limit, search)
		if err != nil {
			writeStorageError(w, "listing students", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, types.StudentList{
			Students: students,
			Total:    total,
			Page:     page,
			Limit:    limit,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /students/{id}
// Fetches a single student by its identifier.
//
// Error responses:
//
//	400 Bad Request  — id is not a well-formed identifier
//	404 Not Found    — well-formed id, no matching record
//	500 Internal     — store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		slog.Info("getting a student", slog.String("id", id))

		student, err := store.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, "getting student", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PATCH /students/{id}
// Merges the supplied fields into an existing student. Absent fields
// are left untouched; an empty body object {} is a valid patch that
// only refreshes updated_at.
//
// Request body (JSON) — any subset of:
//
//	{ "first_name": "...", "last_name": "...", "email": "...", "gender": "..." }
//
// Success response (200 OK): the refreshed full record.
//
// Error responses:
//
//	400 Bad Request  — invalid id, missing/malformed body, unknown
//	                   field, empty field value, or duplicate email
//	404 Not Found    — well-formed id, no matching record
//	500 Internal     — store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		slog.Info("updating a student", slog.String("id", id))

		var upd types.UpdateStudent
		if !decodeBody(w, r, &upd) {
			return
		}

		if err := validator.New().Struct(upd); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		updated, err := store.UpdateStudent(r.Context(), id, upd)
		if err != nil {
			writeStorageError(w, "updating student", err)
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /students/{id}
// Permanently removes a student record.
//
// Success response: 204 No Content, empty body.
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	404 Not Found    — well-formed id, no matching record
//	500 Internal     — store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		slog.Info("deleting a student", slog.String("id", id))

		if err := store.DeleteStudent(r.Context(), id); err != nil {
			writeStorageError(w, "deleting student", err)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeBody decodes the request body into dst, rejecting empty bodies
// and unknown fields. It writes the error response itself and reports
// whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	return true
}

// positiveQueryParam reads an integer query parameter that must be
// >= 1, falling back to def when the parameter is absent.
func positiveQueryParam(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return 0, errors.New("query parameter " + name + " must be a positive integer")
	}

	return v, nil
}

// writeStorageError maps storage errors onto HTTP statuses:
// ErrInvalidID and ErrEmailTaken are client errors, ErrNotFound is a
// 404, and anything else is an unexpected store failure surfaced
// as-is with a 500.
func writeStorageError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidID), errors.Is(err, storage.ErrEmailTaken):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
	case errors.Is(err, storage.ErrNotFound):
		slog.Warn("error "+op, slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	default:
		slog.Error("error "+op, slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}
