package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateProfileRequest {
	return CreateProfileRequest{
		BusinessName: "Acme Studios",
		OwnerName:    "Jo Mwangi",
		Email:        "jo@acme.test",
		Phone:        "+254 712 345 678",
		Address:      "12 Moi Avenue",
		City:         "Nairobi",
		State:        "Nairobi",
		ZipCode:      "00100",
	}
}

func TestValidateAcceptsGoodProfile(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestValidateOptionalFields(t *testing.T) {
	req := validRequest()
	req.Website = "https://acme.test"
	req.Primary = "#112233"
	req.Secondary = "#445566"
	req.Accent = "#778899"
	assert.NoError(t, req.Validate())
}

func TestValidateFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateProfileRequest)
		field  string
	}{
		{"short business name", func(r *CreateProfileRequest) { r.BusinessName = "A" }, "businessName"},
		{"short owner name", func(r *CreateProfileRequest) { r.OwnerName = " J " }, "ownerName"},
		{"bad email", func(r *CreateProfileRequest) { r.Email = "nope" }, "email"},
		{"short phone", func(r *CreateProfileRequest) { r.Phone = "12345" }, "phone"},
		{"phone with letters", func(r *CreateProfileRequest) { r.Phone = "07x2345678901" }, "phone"},
		{"short address", func(r *CreateProfileRequest) { r.Address = "12 M" }, "address"},
		{"short city", func(r *CreateProfileRequest) { r.City = "N" }, "city"},
		{"short state", func(r *CreateProfileRequest) { r.State = "N" }, "state"},
		{"bad zip", func(r *CreateProfileRequest) { r.ZipCode = "1234" }, "zipCode"},
		{"bad website", func(r *CreateProfileRequest) { r.Website = "not a url" }, "website"},
		{"bad color", func(r *CreateProfileRequest) { r.Primary = "blue" }, "primaryColor"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Contains(t, fieldErrs, tc.field)
		})
	}
}

func TestValidateZipPlusFour(t *testing.T) {
	req := validRequest()
	req.ZipCode = "00100-1234"
	assert.NoError(t, req.Validate())
}

func TestValidateCollectsAllErrors(t *testing.T) {
	req := CreateProfileRequest{}
	err := req.Validate()
	require.Error(t, err)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.GreaterOrEqual(t, len(fieldErrs), 7)
}
