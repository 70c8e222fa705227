package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/models"
	"ecocart.dev/ecocart/api/pkg/mongo"
)

// ReviewService manages product comments. Comments are not checked against
// the catalog, so a comment may outlive its product.
type ReviewService struct {
	comments CommentRepo
	images   ImageStore
	cleaner  ImageCleaner
	log      *slog.Logger
	now      func() time.Time
}

func NewReviewService(comments CommentRepo, store ImageStore, cleaner ImageCleaner, log *slog.Logger) *ReviewService {
	return &ReviewService{
		comments: comments,
		images:   store,
		cleaner:  cleaner,
		log:      log,
		now:      time.Now,
	}
}

func (s *ReviewService) ListComments(ctx context.Context, rawProductID string) ([]models.Comment, error) {
	productID, err := parseID("id", rawProductID, "Invalid product ID")
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByProduct(ctx, productID)
	if err != nil {
		return nil, global.NewInternalError("Failed to fetch comments", err)
	}
	return comments, nil
}

func (s *ReviewService) RatingSummary(ctx context.Context, rawProductID string) (models.RatingSummary, error) {
	productID, err := parseID("id", rawProductID, "Invalid product ID")
	if err != nil {
		return models.RatingSummary{}, err
	}

	summary, err := s.comments.RatingSummary(ctx, productID)
	if err != nil {
		return models.RatingSummary{}, global.NewInternalError("Failed to summarize ratings", err)
	}
	return summary, nil
}

func (s *ReviewService) AddComment(ctx context.Context, rawProductID string, req models.CommentRequest, image *images.Upload) error {
	productID, err := parseID("id", rawProductID, "Invalid product ID")
	if err != nil {
		return err
	}
	if err := validate(&req, "Comment is required and rating must be between 1 and 5"); err != nil {
		return err
	}

	ref, err := s.saveImage(image)
	if err != nil {
		return err
	}

	comment := &models.Comment{
		ProductID: productID,
		Body:      req.Body,
		Rating:    req.Rating,
		Timestamp: s.now(),
	}
	if ref != "" {
		comment.ImageURL = strPtr(ref)
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		s.cleaner.Enqueue(ref)
		return global.NewInternalError("Failed to add comment", err)
	}
	return nil
}

// UpdateComment replaces the text, rating and timestamp of a comment, and its
// image when a new one is uploaded. The replaced image is removed in the
// background once the update is stored.
func (s *ReviewService) UpdateComment(ctx context.Context, rawProductID, rawCommentID string, req models.CommentRequest, image *images.Upload) error {
	productID, commentID, err := parseCommentIDs(rawProductID, rawCommentID)
	if err != nil {
		return err
	}
	if err := validate(&req, "Comment is required and rating must be between 1 and 5"); err != nil {
		return err
	}

	existing, err := s.comments.Get(ctx, productID, commentID)
	if err != nil {
		return commentStoreError(err, "Failed to update comment")
	}

	ref, err := s.saveImage(image)
	if err != nil {
		return err
	}

	set := bson.M{
		"comment":   req.Body,
		"rating":    req.Rating,
		"timestamp": s.now(),
	}
	if ref != "" {
		set["imageUrl"] = ref
	}

	if err := s.comments.Update(ctx, productID, commentID, set); err != nil {
		s.cleaner.Enqueue(ref)
		return commentStoreError(err, "Failed to update comment")
	}

	if ref != "" && existing.HasImage() {
		s.cleaner.Enqueue(*existing.ImageURL)
	}
	return nil
}

func (s *ReviewService) DeleteComment(ctx context.Context, rawProductID, rawCommentID string) error {
	productID, commentID, err := parseCommentIDs(rawProductID, rawCommentID)
	if err != nil {
		return err
	}

	existing, err := s.comments.Get(ctx, productID, commentID)
	if err != nil {
		return commentStoreError(err, "Failed to delete comment")
	}

	if err := s.comments.Delete(ctx, productID, commentID); err != nil {
		return commentStoreError(err, "Failed to delete comment")
	}

	if existing.HasImage() {
		s.cleaner.Enqueue(*existing.ImageURL)
	}
	return nil
}

func (s *ReviewService) saveImage(image *images.Upload) (string, error) {
	if image == nil {
		return "", nil
	}
	ref, err := s.images.Save(images.DirComments, image)
	if err != nil {
		return "", uploadError("image", err)
	}
	return ref, nil
}

func parseCommentIDs(rawProductID, rawCommentID string) (bson.ObjectID, bson.ObjectID, error) {
	productID, err := parseID("id", rawProductID, "Invalid IDs")
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, err
	}
	commentID, err := parseID("commentId", rawCommentID, "Invalid IDs")
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, err
	}
	return productID, commentID, nil
}

func commentStoreError(err error, message string) error {
	if errors.Is(err, mongo.ErrNotFound) {
		return global.NewNotFound("Comment not found")
	}
	return global.NewInternalError(message, err)
}
