package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nkitsaini/sveltia-cms/pkg/models"
)

// ErrFileScopeMismatch means a file name was passed for an entry collection,
// or omitted for a file collection.
var ErrFileScopeMismatch = errors.New("file name does not match collection kind")

// PreconditionError is the panic value raised when a caller breaks the
// contract of GetFieldByKeyPath.
type PreconditionError struct {
	Collection string
	FileName   string
	Err        error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("collection %q, file %q: %v", e.Collection, e.FileName, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// FieldPathOptions tunes ResolveFieldPath.
type FieldPathOptions struct {
	// Strict returns nil as soon as a segment names nothing in the schema,
	// instead of carrying the previously resolved field forward. List
	// indexes and the repeated name of a single-field list item still
	// resolve.
	Strict bool
}

// GetFieldByKeyPath resolves a flattened key path such as "authors.0.name" to
// the field that governs it. valueMap is the flattened content the path was
// taken from and is consulted to pick variant types.
//
// fileName must be set exactly when the collection is a file collection;
// otherwise GetFieldByKeyPath panics with a *PreconditionError. Use
// CheckFileScope to validate untrusted input first.
func (s *State) GetFieldByKeyPath(collectionName, fileName, keyPath string, valueMap map[string]any) *models.Field {
	col := findCollection(s.SiteConfig(), collectionName)
	if col == nil {
		return nil
	}
	if err := CheckFileScope(col, fileName); err != nil {
		panic(&PreconditionError{Collection: collectionName, FileName: fileName, Err: err})
	}

	fields := col.Fields
	if fileName != "" {
		file := findFile(col, fileName)
		if file == nil {
			return nil
		}
		fields = file.Fields
	}
	return ResolveFieldPath(fields, keyPath, valueMap, FieldPathOptions{Strict: s.StrictKeyPaths})
}

// CheckFileScope reports ErrFileScopeMismatch when fileName does not fit the
// kind of col.
func CheckFileScope(col *models.Collection, fileName string) error {
	if col.IsFileCollection() != (fileName != "") {
		return ErrFileScopeMismatch
	}
	return nil
}

// ResolveFieldPath walks keyPath through fields.
func ResolveFieldPath(fields []models.Field, keyPath string, valueMap map[string]any, opts FieldPathOptions) *models.Field {
	segments := strings.Split(keyPath, ".")

	field := fieldByName(fields, segments[0])
	if field == nil {
		return nil
	}

	// listItem is set right after descending into the item of a `field` list.
	listItem := false
	for i := 1; i < len(segments); i++ {
		segment := segments[i]
		numeric := isIndex(segment)
		var next *models.Field
		known := false

		switch shape := field.Shape; {
		case shape.Kind == models.ShapeList:
			next = shape.Field
		case shape.Kind == models.ShapeObject && !numeric:
			next = fieldByName(shape.Fields, segment)
		case shape.Kind == models.ShapeObject && numeric:
			// Index into a list of objects.
			known = true
		case shape.Kind == models.ShapeVariant && numeric:
			typeKey := strings.Join(segments[:i+1], ".") + "." + shape.TypeKey
			if typeName, ok := valueMap[typeKey].(string); ok {
				next = fieldByName(shape.Types, typeName)
			}
		}
		if next == nil && listItem && segment == field.Name {
			known = true
		}

		listItem = next != nil && field.Shape.Kind == models.ShapeList
		if next != nil {
			field = next
		} else if opts.Strict && !known {
			return nil
		}
	}
	return field
}

func fieldByName(fields []models.Field, name string) *models.Field {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i]
		}
	}
	return nil
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
