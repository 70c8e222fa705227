package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/models"
)

// parseID checks an identifier before anything reaches the store.
func parseID(field, raw, message string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.ObjectID{}, global.NewInvalidIdentifier(field, message)
	}
	return id, nil
}

func validate(req any, message string) error {
	if errs := models.Validate(req); len(errs) > 0 {
		return global.NewValidationError(message, errs...)
	}
	return nil
}

// uploadError classifies a failed image save. Bad content is the client's
// fault; anything else is ours.
func uploadError(field string, err error) error {
	switch {
	case errors.Is(err, images.ErrNotImage):
		return global.NewValidationError("Only image files are allowed",
			global.ValidationError{Field: field, Message: "File must be an image", Code: "invalid_type"})
	case errors.Is(err, images.ErrEmptyImage):
		return global.NewValidationError("Uploaded image is empty",
			global.ValidationError{Field: field, Message: "File must not be empty", Code: "empty_file"})
	default:
		return global.NewInternalError("Failed to store image", err)
	}
}

func strPtr(s string) *string { return &s }
