package domain

import "errors"

var (
	ErrEmptyLabel       = errors.New("empty_label")
	ErrInvalidFieldType = errors.New("invalid_field_type")
	ErrDuplicateField   = errors.New("duplicate_field")
	ErrFieldNotFound    = errors.New("field_not_found")
	ErrDerivedField     = errors.New("derived_field")
	ErrItemNotFound     = errors.New("item_not_found")
	ErrLastItem         = errors.New("last_item")
	ErrInvalidTax       = errors.New("invalid_tax")
	ErrInvalidColor     = errors.New("invalid_color")
	ErrUnknownField     = errors.New("unknown_field")
	ErrInvalidStyle     = errors.New("invalid_style")
	ErrSessionNotFound  = errors.New("session_not_found")
	ErrExportInFlight   = errors.New("export_in_flight")
	ErrFileTooLarge     = errors.New("file_too_large")
	ErrNotAnImage       = errors.New("not_an_image")
	ErrCaptureTooSmall  = errors.New("capture_scale_too_small")
	ErrNoCapture        = errors.New("no_capture")
)
