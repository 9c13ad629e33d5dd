// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer
package repository

import "errors"

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("record not found")
