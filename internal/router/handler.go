package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/images"
	"ecocart.dev/ecocart/api/pkg/models"
)

// MaxProductImageSize caps the product image that is inlined into the
// catalog document.
const MaxProductImageSize = 5 << 20

type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	AddProduct(ctx context.Context, req *models.CreateProductRequest) (bson.ObjectID, error)
	DeleteProduct(ctx context.Context, rawID string) error
}

type Reviews interface {
	ListComments(ctx context.Context, rawProductID string) ([]models.Comment, error)
	RatingSummary(ctx context.Context, rawProductID string) (models.RatingSummary, error)
	AddComment(ctx context.Context, rawProductID string, req models.CommentRequest, image *images.Upload) error
	UpdateComment(ctx context.Context, rawProductID, rawCommentID string, req models.CommentRequest, image *images.Upload) error
	DeleteComment(ctx context.Context, rawProductID, rawCommentID string) error
}

type Accounts interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest, image *images.Upload) (string, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
}

type Orders interface {
	PlaceOrder(ctx context.Context, req models.CreateOrderRequest) (bson.ObjectID, error)
}

type Assistant interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the handlers delegate to.
type Deps struct {
	Catalog   Catalog
	Reviews   Reviews
	Accounts  Accounts
	Orders    Orders
	Assistant Assistant
	Database  Pinger
	Log       *slog.Logger
}

type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{Deps: deps}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.Database.Ping(c.Request.Context()); err != nil {
		h.Log.Error("health check failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "database": "Connected"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) AddProduct(c *gin.Context) {
	req := &models.CreateProductRequest{
		Name:     c.PostForm("Name"),
		Category: c.PostForm("Category"),
	}

	var err error
	if req.Price, err = models.ParseOptionalFloat(c.PostForm("Price")); err != nil {
		h.writeError(c, notANumber("Price"))
		return
	}
	if req.Rating, err = models.ParseOptionalFloat(c.PostForm("Rating")); err != nil {
		h.writeError(c, notANumber("Rating"))
		return
	}

	fh, err := formFile(c, "image")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if fh != nil {
		if req.Image, err = readProductImage(fh); err != nil {
			h.writeError(c, err)
			return
		}
		req.MimeType = fh.Header.Get("Content-Type")
	}

	id, err := h.Catalog.AddProduct(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added successfully", "id": id.Hex()})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse("Product deleted successfully"))
}

func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.Reviews.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) CommentSummary(c *gin.Context) {
	summary, err := h.Reviews.RatingSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) AddComment(c *gin.Context) {
	req := models.NewCommentRequest(c.PostForm("comment"), c.PostForm("rating"))
	upload, done, err := formUpload(c, "image")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer done()

	if err := h.Reviews.AddComment(c.Request.Context(), c.Param("id"), req, upload); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse("Comment added successfully"))
}

func (h *Handler) UpdateComment(c *gin.Context) {
	req := models.NewCommentRequest(c.PostForm("comment"), c.PostForm("rating"))
	upload, done, err := formUpload(c, "image")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer done()

	if err := h.Reviews.UpdateComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), req, upload); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse("Comment updated successfully"))
}

func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.Reviews.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse("Comment deleted successfully"))
}

func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.Accounts.Register(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse("User registered successfully"))
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	user, err := h.Accounts.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeError(c, global.NewValidationError("Invalid request body"))
		return
	}
	upload, done, err := formUpload(c, "profileImage")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer done()

	ref, err := h.Accounts.UpdateProfile(c.Request.Context(), req, upload)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var profileImageURL *string
	if ref != "" {
		profileImageURL = &ref
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Profile updated successfully",
		"profileImageUrl": profileImageURL,
	})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.Accounts.ChangePassword(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse("Password changed successfully"))
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	id, err := h.Orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order saved successfully", "orderId": id.Hex()})
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) AskAI(c *gin.Context) {
	var req askRequest
	if !h.bindJSON(c, &req) {
		return
	}
	reply, err := h.Assistant.Ask(c.Request.Context(), req.Prompt)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.writeError(c, global.NewValidationError("Invalid request body"))
		return false
	}
	return true
}

// writeError is the only place a service error becomes a response.
func (h *Handler) writeError(c *gin.Context, err error) {
	appErr := global.AsAppError(err)
	if appErr.Kind == global.KindInternal || appErr.Kind == global.KindUpstream {
		h.Log.Error(appErr.Message,
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("path", c.FullPath()),
			slog.Any("err", appErr.Cause),
		)
	}
	c.JSON(appErr.Kind.HTTPStatus(), global.ErrorResponse(appErr.Message, appErr.Fields))
}

// formFile returns the named file of a multipart request, or nil when the
// request carries none.
func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	switch {
	case err == nil:
		return fh, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, global.NewValidationError("Invalid multipart form",
			global.ValidationError{Field: field, Message: err.Error(), Code: "invalid_format"})
	}
}

func formUpload(c *gin.Context, field string) (*images.Upload, func(), error) {
	fh, err := formFile(c, field)
	if err != nil || fh == nil {
		return nil, func() {}, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, global.NewInternalError("Failed to read upload", err)
	}
	up := &images.Upload{Field: field, Filename: fh.Filename, Size: fh.Size, Content: f}
	return up, func() { f.Close() }, nil
}

func readProductImage(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > MaxProductImageSize {
		return nil, global.NewValidationError("Product image is too large",
			global.ValidationError{Field: "image", Message: "File must be at most 5MB", Code: "too_large"})
	}
	f, err := fh.Open()
	if err != nil {
		return nil, global.NewInternalError("Failed to read upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxProductImageSize))
	if err != nil {
		return nil, global.NewInternalError("Failed to read upload", err)
	}
	return data, nil
}

func notANumber(field string) error {
	return global.NewValidationError(field+" must be a number",
		global.ValidationError{Field: field, Message: "Must be a finite number", Code: "invalid_format"})
}
