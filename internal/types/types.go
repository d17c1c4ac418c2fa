// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import "time"

// Student is the full stored representation of a student record as it
// appears in API responses.
//
// Struct tags serve two purposes:
//
//  1. json:"..." — controls how the field appears when encoded to JSON
//     (snake_case names match the REST API contract).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package on incoming payloads.
//
// ID is the store-assigned identifier rendered as a 24-character hex
// string; the raw driver id type never crosses the API boundary.
// Gender is a pointer so a record without one serialises as null
// rather than "".
type Student struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Gender    *string   `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStudent is the POST /students request body.
// first_name, last_name and email are required; gender is optional.
type CreateStudent struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name"  validate:"required"`
	Email     string  `json:"email"      validate:"required"`
	Gender    *string `json:"gender"`
}

// UpdateStudent is the PATCH /students/{id} request body.
//
// Every field is a pointer so we can tell "absent" (nil — leave the
// stored value untouched) apart from "present". Only non-nil fields
// are merged into the record. omitnil skips the rule for absent
// fields while still rejecting explicit empty strings.
type UpdateStudent struct {
	FirstName *string `json:"first_name" validate:"omitnil,min=1"`
	LastName  *string `json:"last_name"  validate:"omitnil,min=1"`
	Email     *string `json:"email"      validate:"omitnil,min=1"`
	Gender    *string `json:"gender"`
}

// StudentList is the GET /students response envelope.
// Total is the count of ALL records matching the filter, not just the
// returned page; Page and Limit echo the (defaulted) query values.
type StudentList struct {
	Students []Student `json:"students"`
	Total    int64     `json:"total"`
	Page     int64     `json:"page"`
	Limit    int64     `json:"limit"`
}
