package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceValueNumeric(t *testing.T) {
	assert.Equal(t, 2.5, CoerceValue(FieldTypeNumber, 2.5).AsNumber())
	assert.Equal(t, 3.0, CoerceValue(FieldTypeNumber, 3).AsNumber())
	assert.Equal(t, 9.99, CoerceValue(FieldTypeNumber, "9.99").AsNumber())
	assert.Equal(t, 0.0, CoerceValue(FieldTypeNumber, "not a number").AsNumber())
	assert.Equal(t, 0.0, CoerceValue(FieldTypeNumber, nil).AsNumber())
}

func TestCoerceValueText(t *testing.T) {
	assert.Equal(t, "hello", CoerceValue(FieldTypeText, "hello").AsText())
	assert.Equal(t, "", CoerceValue(FieldTypeText, nil).AsText())
	// A number sent to a text field round-trips through its display form.
	assert.Equal(t, "7", CoerceValue(FieldTypeText, 7.0).AsText())
}

func TestAsNumberParsesText(t *testing.T) {
	assert.Equal(t, 12.5, TextValue(" 12.5 ").AsNumber())
	assert.Equal(t, 0.0, TextValue("three").AsNumber())
	assert.Equal(t, 0.0, TextValue("").AsNumber())
}

func TestAsTextNumbers(t *testing.T) {
	assert.Equal(t, "29.97", NumberValue(29.97).AsText())
	assert.Equal(t, "3", NumberValue(3).AsText())
	assert.Equal(t, "0", NumberValue(0).AsText())
}

func TestFieldValueJSON(t *testing.T) {
	item := Item{
		ID: "item-1",
		Values: map[string]FieldValue{
			"name":     TextValue("Consulting"),
			"quantity": NumberValue(3),
		},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded Item
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Consulting", decoded.Values["name"].AsText())
	assert.Equal(t, 3.0, decoded.Values["quantity"].AsNumber())
	assert.Equal(t, ValueKindText, decoded.Values["name"].Kind)
	assert.Equal(t, ValueKindNumber, decoded.Values["quantity"].Kind)
}
