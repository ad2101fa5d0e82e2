// Package repository declares the storage contracts shared by the domain
// services and the sqlite package.
package repository

import "errors"

// ErrNotFound is returned when a slot key has no document.
var ErrNotFound = errors.New("not found")
