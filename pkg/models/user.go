package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a storefront account. The password hash is never serialized.
type User struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email           string        `bson:"email" json:"email"`
	Password        string        `bson:"password" json:"-"`
	Name            string        `bson:"name" json:"name"`
	Username        string        `bson:"username" json:"username"`
	Pronouns        string        `bson:"pronouns" json:"pronouns"`
	Bio             string        `bson:"bio" json:"bio"`
	Links           string        `bson:"links" json:"links"`
	Gender          string        `bson:"gender" json:"gender"`
	Phone           string        `bson:"phone" json:"phone"`
	Address         string        `bson:"address" json:"address"`
	ProfileImageURL string        `bson:"profileImageUrl" json:"profileImageUrl"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// UpdateProfileRequest carries a full overwrite of the profile fields.
// Optional fields left empty are stored as empty strings.
type UpdateProfileRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Name     string `form:"name" json:"name" validate:"required"`
	Username string `form:"username" json:"username" validate:"required"`
	Pronouns string `form:"pronouns" json:"pronouns" validate:"required"`
	Bio      string `form:"bio" json:"bio"`
	Links    string `form:"links" json:"links"`
	Gender   string `form:"gender" json:"gender"`
	Phone    string `form:"phone" json:"phone"`
	Address  string `form:"address" json:"address"`
}

// NewUser builds a freshly registered account with every optional profile
// field initialised to an empty string.
func NewUser(email, passwordHash, name string) *User {
	return &User{
		ID:       bson.NewObjectID(),
		Email:    email,
		Password: passwordHash,
		Name:     name,
	}
}

// ProfileUpdate returns the $set document for a profile overwrite.
func (req *UpdateProfileRequest) ProfileUpdate(profileImageURL string) bson.M {
	fields := bson.M{
		"name":     req.Name,
		"username": req.Username,
		"pronouns": req.Pronouns,
		"bio":      req.Bio,
		"links":    req.Links,
		"gender":   req.Gender,
		"phone":    req.Phone,
		"address":  req.Address,
	}
	if profileImageURL != "" {
		fields["profileImageUrl"] = profileImageURL
	}
	return fields
}

// Sanitized returns a copy safe to send to the client.
func (u *User) Sanitized() *User {
	out := *u
	out.Password = ""
	return &out
}
