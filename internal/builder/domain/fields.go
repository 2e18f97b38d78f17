package domain

import (
	"regexp"
	"strings"
)

// FieldType classifies a line-item column.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCurrency FieldType = "currency"
)

// Numeric reports whether values of this type are money-formatted and
// right-aligned by every renderer.
func (t FieldType) Numeric() bool {
	return t == FieldTypeNumber || t == FieldTypeCurrency
}

// FieldDefinition describes one line-item column. ID is stable once
// created and is the identity used for toggling and drag reordering.
type FieldDefinition struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Width    int       `json:"width"`
	Enabled  bool      `json:"enabled"`
}

// Registry is the ordered, mutable set of line-item field definitions.
// Its enabled projection is the authoritative column order for the
// preview and both exporters.
type Registry struct {
	fields []FieldDefinition
}

// DefaultFields seeds the registry for a new document.
func DefaultFields() []FieldDefinition {
	return []FieldDefinition{
		{ID: "name", Name: "name", Label: "Item Name", Type: FieldTypeText, Required: true, Width: 3, Enabled: true},
		{ID: "description", Name: "description", Label: "Description", Type: FieldTypeText, Required: false, Width: 3, Enabled: true},
		{ID: "quantity", Name: "quantity", Label: "Quantity", Type: FieldTypeNumber, Required: true, Width: 2, Enabled: true},
		{ID: "price", Name: "price", Label: "Price", Type: FieldTypeNumber, Required: true, Width: 2, Enabled: true},
		{ID: "amount", Name: "amount", Label: "Amount", Type: FieldTypeNumber, Required: true, Width: 2, Enabled: true},
	}
}

// NewRegistry returns a registry seeded with the built-in fields.
func NewRegistry() *Registry {
	return &Registry{fields: DefaultFields()}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FieldName derives the machine key for a field label: lowercased, with
// whitespace runs collapsed to underscores.
func FieldName(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "_")
}

// AddField appends a custom field. Custom fields are limited to text and
// number types, default to optional, width 2, enabled.
func (r *Registry) AddField(label string, fieldType FieldType) (FieldDefinition, error) {
	if strings.TrimSpace(label) == "" {
		return FieldDefinition{}, ErrEmptyLabel
	}
	if fieldType != FieldTypeText && fieldType != FieldTypeNumber {
		return FieldDefinition{}, ErrInvalidFieldType
	}

	name := FieldName(label)
	for _, f := range r.fields {
		if f.Name == name {
			return FieldDefinition{}, ErrDuplicateField
		}
	}

	field := FieldDefinition{
		ID:       name,
		Name:     name,
		Label:    strings.TrimSpace(label),
		Type:     fieldType,
		Required: false,
		Width:    2,
		Enabled:  true,
	}
	r.fields = append(r.fields, field)
	return field, nil
}

// ToggleField flips a field's enabled state in place. Order is unaffected
// and the field's data on existing items is left untouched.
func (r *Registry) ToggleField(id string) error {
	for i := range r.fields {
		if r.fields[i].ID == id {
			r.fields[i].Enabled = !r.fields[i].Enabled
			return nil
		}
	}
	return ErrFieldNotFound
}

// Reorder moves the field at src to dst. Invalid positions (a cancelled
// drag) are a no-op.
func (r *Registry) Reorder(src, dst int) {
	r.fields = ReorderFields(r.fields, src, dst)
}

// ReorderFields is the pure reorder used by Registry.Reorder; the HTTP
// layer is a thin adapter translating drag events into this call.
func ReorderFields(fields []FieldDefinition, src, dst int) []FieldDefinition {
	if src < 0 || src >= len(fields) || dst < 0 || dst >= len(fields) || src == dst {
		return fields
	}
	out := make([]FieldDefinition, 0, len(fields))
	out = append(out, fields[:src]...)
	out = append(out, fields[src+1:]...)

	tail := make([]FieldDefinition, len(out[dst:]))
	copy(tail, out[dst:])
	out = append(out[:dst], fields[src])
	out = append(out, tail...)
	return out
}

// Lookup finds a field definition by its machine name.
func (r *Registry) Lookup(name string) (FieldDefinition, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Fields returns the full ordered definition list.
func (r *Registry) Fields() []FieldDefinition {
	out := make([]FieldDefinition, len(r.fields))
	copy(out, r.fields)
	return out
}

// Enabled returns the enabled fields in registry order.
func (r *Registry) Enabled() []FieldDefinition {
	out := make([]FieldDefinition, 0, len(r.fields))
	for _, f := range r.fields {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}
