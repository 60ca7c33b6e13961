package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultTypeKey is the discriminator key of variant list items.
const DefaultTypeKey = "type"

// ShapeKind tells which nested structure, if any, a field declares.
type ShapeKind int

const (
	ShapeLeaf    ShapeKind = iota
	ShapeList              // single nested `field`, reused for every list index
	ShapeObject            // fixed named `fields`
	ShapeVariant           // `types` selected by the value at `typeKey`
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeList:
		return "list"
	case ShapeObject:
		return "object"
	case ShapeVariant:
		return "variant"
	default:
		return "leaf"
	}
}

// FieldShape is the nested schema of a composite field. Only the member
// matching Kind is populated.
type FieldShape struct {
	Kind    ShapeKind
	Field   *Field
	Fields  []Field
	Types   []Field
	TypeKey string
}

// Field is one node of a collection schema.
type Field struct {
	Name    string
	Label   string
	Widget  string
	Default any
	Shape   FieldShape
}

// IsMedia reports whether the widget stores a media asset reference.
func (f *Field) IsMedia() bool {
	return f.Widget == "file" || f.Widget == "image"
}

// fieldDoc is the authored (flat) form of a Field.
type fieldDoc struct {
	Name    string  `yaml:"name" json:"name"`
	Label   string  `yaml:"label,omitempty" json:"label,omitempty"`
	Widget  string  `yaml:"widget,omitempty" json:"widget,omitempty"`
	Default any     `yaml:"default,omitempty" json:"default,omitempty"`
	Field   *Field  `yaml:"field,omitempty" json:"field,omitempty"`
	Fields  []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
	Types   []Field `yaml:"types,omitempty" json:"types,omitempty"`
	TypeKey string  `yaml:"typeKey,omitempty" json:"typeKey,omitempty"`
}

func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	var doc fieldDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	shape, err := shapeOf(doc)
	if err != nil {
		return fmt.Errorf("field %q (line %d): %w", doc.Name, node.Line, err)
	}
	*f = Field{
		Name:    doc.Name,
		Label:   doc.Label,
		Widget:  doc.Widget,
		Default: doc.Default,
		Shape:   shape,
	}
	return nil
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var doc fieldDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	shape, err := shapeOf(doc)
	if err != nil {
		return fmt.Errorf("field %q: %w", doc.Name, err)
	}
	*f = Field{
		Name:    doc.Name,
		Label:   doc.Label,
		Widget:  doc.Widget,
		Default: doc.Default,
		Shape:   shape,
	}
	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.doc())
}

func (f Field) MarshalYAML() (interface{}, error) {
	return f.doc(), nil
}

func (f Field) doc() fieldDoc {
	doc := fieldDoc{
		Name:    f.Name,
		Label:   f.Label,
		Widget:  f.Widget,
		Default: f.Default,
	}
	switch f.Shape.Kind {
	case ShapeList:
		doc.Field = f.Shape.Field
	case ShapeObject:
		doc.Fields = f.Shape.Fields
	case ShapeVariant:
		doc.Types = f.Shape.Types
		if f.Shape.TypeKey != DefaultTypeKey {
			doc.TypeKey = f.Shape.TypeKey
		}
	}
	return doc
}

func shapeOf(doc fieldDoc) (FieldShape, error) {
	declared := 0
	if doc.Field != nil {
		declared++
	}
	if doc.Fields != nil {
		declared++
	}
	if doc.Types != nil {
		declared++
	}
	if declared > 1 {
		return FieldShape{}, fmt.Errorf("only one of field, fields or types may be set")
	}

	switch {
	case doc.Field != nil:
		return FieldShape{Kind: ShapeList, Field: doc.Field}, nil
	case doc.Fields != nil:
		return FieldShape{Kind: ShapeObject, Fields: doc.Fields}, nil
	case doc.Types != nil:
		typeKey := doc.TypeKey
		if typeKey == "" {
			typeKey = DefaultTypeKey
		}
		return FieldShape{Kind: ShapeVariant, Types: doc.Types, TypeKey: typeKey}, nil
	}
	return FieldShape{Kind: ShapeLeaf}, nil
}

// NewListField builds a homogeneous list field.
func NewListField(name, widget string, item Field) Field {
	return Field{Name: name, Widget: widget, Shape: FieldShape{Kind: ShapeList, Field: &item}}
}

// NewObjectField builds a field with a fixed set of named subfields.
func NewObjectField(name, widget string, fields ...Field) Field {
	return Field{Name: name, Widget: widget, Shape: FieldShape{Kind: ShapeObject, Fields: fields}}
}

// NewVariantField builds a typed list field. An empty typeKey means DefaultTypeKey.
func NewVariantField(name, widget, typeKey string, types ...Field) Field {
	if typeKey == "" {
		typeKey = DefaultTypeKey
	}
	return Field{Name: name, Widget: widget, Shape: FieldShape{Kind: ShapeVariant, Types: types, TypeKey: typeKey}}
}
