// Package repository provides a generic repository abstraction built on Bun
// for CRUD operations and list queries, with optional soft delete.
package repository
