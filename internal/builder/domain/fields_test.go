package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldName(t *testing.T) {
	cases := map[string]string{
		"Discount":       "discount",
		"Unit  Price":    "unit_price",
		"  PO Number  ":  "po_number",
		"tax\trate":      "tax_rate",
		"already_snake":  "already_snake",
		"Multi Word Key": "multi_word_key",
	}
	for label, want := range cases {
		assert.Equal(t, want, FieldName(label))
	}
}

func TestNewRegistryDefaults(t *testing.T) {
	r := NewRegistry()
	fields := r.Fields()
	require.Len(t, fields, 5)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
		assert.True(t, f.Enabled)
	}
	assert.Equal(t, []string{"name", "description", "quantity", "price", "amount"}, names)

	assert.Equal(t, 3, fields[0].Width)
	assert.Equal(t, 3, fields[1].Width)
	assert.Equal(t, 2, fields[2].Width)
	assert.Equal(t, FieldTypeNumber, fields[4].Type)
}

func TestAddField(t *testing.T) {
	r := NewRegistry()

	field, err := r.AddField("Discount Rate", FieldTypeNumber)
	require.NoError(t, err)
	assert.Equal(t, "discount_rate", field.Name)
	assert.Equal(t, "discount_rate", field.ID)
	assert.Equal(t, "Discount Rate", field.Label)
	assert.Equal(t, 2, field.Width)
	assert.True(t, field.Enabled)
	assert.False(t, field.Required)

	// Appended after the defaults.
	fields := r.Fields()
	assert.Equal(t, "discount_rate", fields[len(fields)-1].Name)
}

func TestAddFieldRejectsBadInput(t *testing.T) {
	r := NewRegistry()

	_, err := r.AddField("   ", FieldTypeText)
	assert.ErrorIs(t, err, ErrEmptyLabel)

	_, err = r.AddField("Fee", FieldTypeCurrency)
	assert.ErrorIs(t, err, ErrInvalidFieldType)

	_, err = r.AddField("Fee", FieldType("date"))
	assert.ErrorIs(t, err, ErrInvalidFieldType)
}

func TestAddFieldRejectsDuplicateName(t *testing.T) {
	r := NewRegistry()

	// Collides with the built-in quantity field.
	_, err := r.AddField("Quantity", FieldTypeNumber)
	assert.ErrorIs(t, err, ErrDuplicateField)

	_, err = r.AddField("Discount", FieldTypeNumber)
	require.NoError(t, err)

	// Different label, same derived name.
	_, err = r.AddField("  DISCOUNT ", FieldTypeText)
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestToggleField(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.ToggleField("description"))
	assert.Len(t, r.Enabled(), 4)

	// Order is preserved across toggles.
	require.NoError(t, r.ToggleField("description"))
	names := make([]string, 0)
	for _, f := range r.Enabled() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"name", "description", "quantity", "price", "amount"}, names)

	assert.ErrorIs(t, r.ToggleField("nope"), ErrFieldNotFound)
}

func TestReorderFields(t *testing.T) {
	r := NewRegistry()
	r.Reorder(0, 2)

	names := make([]string, 0)
	for _, f := range r.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"description", "quantity", "name", "price", "amount"}, names)
}

func TestReorderFieldsInvalidBoundsIsNoOp(t *testing.T) {
	original := DefaultFields()

	for _, tc := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {2, 2}} {
		got := ReorderFields(DefaultFields(), tc[0], tc[1])
		assert.Equal(t, original, got, "src=%d dst=%d", tc[0], tc[1])
	}
}
