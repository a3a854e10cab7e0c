// Package model declares the persisted document types.
package model

// Document is implemented by every persisted type so the repository layer can
// assign identity and defaults before the first insert.
type Document interface {
	EnsureDefaults()
}
