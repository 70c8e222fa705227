package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func validProductRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:     "Bamboo Bottle",
		Category: "Kitchen",
		Price:    floatPtr(12.5),
		Image:    []byte{0x89, 'P', 'N', 'G'},
		MimeType: "image/png",
	}
}

func TestCreateProductRequestBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		price   *float64
		rating  *float64
		wantErr string
	}{
		{name: "price -0.01 rejected", price: floatPtr(-0.01), wantErr: "Price"},
		{name: "price 0 accepted", price: floatPtr(0)},
		{name: "rating omitted accepted", price: floatPtr(1)},
		{name: "rating -0.01 rejected", price: floatPtr(1), rating: floatPtr(-0.01), wantErr: "Rating"},
		{name: "rating 0 accepted", price: floatPtr(1), rating: floatPtr(0)},
		{name: "rating 5 accepted", price: floatPtr(1), rating: floatPtr(5)},
		{name: "rating 5.01 rejected", price: floatPtr(1), rating: floatPtr(5.01), wantErr: "Rating"},
		{name: "price missing rejected", wantErr: "Price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validProductRequest()
			req.Price = tc.price
			req.Rating = tc.rating

			errs := Validate(&req)
			if tc.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tc.wantErr, errs[0].Field)
		})
	}
}

func TestCreateProductRequestRequiresImageAndNames(t *testing.T) {
	req := CreateProductRequest{Price: floatPtr(3)}

	errs := Validate(&req)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"Name", "Category", "image"}, fields)
}

func TestToProductDefaultsRating(t *testing.T) {
	req := validProductRequest()

	p := req.ToProduct("data:image/png;base64,AA==")

	assert.Equal(t, DefaultProductRating, p.Rating)
	assert.Equal(t, 12.5, p.Price)
	assert.False(t, p.ID.IsZero())
}

func TestParseOptionalFloat(t *testing.T) {
	v, err := ParseOptionalFloat("  ")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseOptionalFloat("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, *v)

	_, err = ParseOptionalFloat("twelve")
	assert.Error(t, err)

	_, err = ParseOptionalFloat("NaN")
	assert.Error(t, err)

	_, err = ParseOptionalFloat("+Inf")
	assert.Error(t, err)
}

func TestCommentRequestRating(t *testing.T) {
	for _, rating := range []string{"0", "6", "", "abc"} {
		req := NewCommentRequest("Great bottle", rating)
		errs := Validate(&req)
		require.Len(t, errs, 1, "rating %q", rating)
		assert.Equal(t, "rating", errs[0].Field)
	}
	for _, rating := range []string{"1", "2", "3", "4", "5", " 5 "} {
		req := NewCommentRequest("Great bottle", rating)
		assert.Empty(t, Validate(&req), "rating %q", rating)
	}
}

func TestCommentRequestBlankBody(t *testing.T) {
	req := NewCommentRequest("   \n\t", "4")

	errs := Validate(&req)

	require.Len(t, errs, 1)
	assert.Equal(t, "comment", errs[0].Field)
	assert.Equal(t, "required", errs[0].Code)
}

func TestChangePasswordLength(t *testing.T) {
	short := ChangePasswordRequest{Email: "a@b.c", NewPassword: "12345"}
	errs := Validate(&short)
	require.Len(t, errs, 1)
	assert.Equal(t, "newPassword", errs[0].Field)
	assert.Equal(t, "min", errs[0].Code)

	ok := ChangePasswordRequest{Email: "a@b.c", NewPassword: "123456"}
	assert.Empty(t, Validate(&ok))
}

func TestCreateOrderRequestCart(t *testing.T) {
	req := CreateOrderRequest{
		FullName:   "Ada Lovelace",
		Address:    "12 Analytical Way",
		City:       "London",
		PostalCode: "N1 9GU",
		Total:      25,
		Timestamp:  "2026-10-15T10:00:00Z",
	}

	errs := Validate(&req)
	require.Len(t, errs, 1)
	assert.Equal(t, "cart", errs[0].Field)

	req.Cart = []CartLine{}
	errs = Validate(&req)
	require.Len(t, errs, 1)
	assert.Equal(t, "cart", errs[0].Field)

	req.Cart = []CartLine{{Name: "Bamboo Bottle", Price: 12.5, Quantity: 2}}
	assert.Empty(t, Validate(&req))

	req.Cart = []CartLine{{Price: 12.5, Quantity: 0}}
	errs = Validate(&req)
	assert.Len(t, errs, 2)
	assert.Equal(t, "cart[0].name", errs[0].Field)
}

func TestUpdateProfileOverwritesOptionalFields(t *testing.T) {
	req := UpdateProfileRequest{Email: "a@b.c", Name: "Ada", Username: "ada", Pronouns: "she/her"}

	set := req.ProfileUpdate("")

	assert.Equal(t, "", set["bio"])
	assert.Equal(t, "", set["address"])
	assert.NotContains(t, set, "profileImageUrl")
	assert.Equal(t, "/images/profiles/1-a.png", req.ProfileUpdate("/images/profiles/1-a.png")["profileImageUrl"])
}

func TestSanitizedUserHasNoPassword(t *testing.T) {
	u := NewUser("a@b.c", "$2a$10$hash", "Ada")

	out := u.Sanitized()

	assert.Empty(t, out.Password)
	assert.Equal(t, "$2a$10$hash", u.Password)
	assert.Equal(t, "", out.Username)
}
