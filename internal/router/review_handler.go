package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
	"github.com/inslanka/shop-api/pkg/mongo"
)

func GetProductReviews(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := mongo.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "slug", Message: "No product exists with this slug", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching product: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get reviews", nil))
		return
	}

	page, limit := pagination(c)
	reviews, err := mongo.ListReviewsForProduct(ctx, product.ID, page, limit)
	if err != nil {
		log.Printf("Error listing reviews: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get reviews", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(reviews))
}

func CreateProductReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	product, err := mongo.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "slug", Message: "No product exists with this slug", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching product: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create review", nil))
		return
	}

	review := &models.Review{
		ProductID:   product.ID,
		UserID:      currentUserID(c),
		OrderNumber: req.OrderNumber,
		Rating:      req.Rating,
		Title:       req.Title,
		Comment:     req.Comment,
	}

	created, err := mongo.CreateReview(ctx, review)
	if err != nil {
		if errors.Is(err, mongo.ErrReviewExists) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Review already exists", []global.ValidationError{
				{Field: "product_id", Message: "You have already reviewed this product", Code: "duplicate"},
			}))
			return
		}
		log.Printf("Error creating review: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create review", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

// DeleteReview removes one of the caller's own reviews
func DeleteReview(c *gin.Context) {
	reviewID, err := bsonObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid review id", []global.ValidationError{
			{Field: "id", Message: "Review id must be a valid object id", Code: "invalid_format"},
		}))
		return
	}

	if err := mongo.DeleteReview(c.Request.Context(), currentUserID(c), reviewID); err != nil {
		if errors.Is(err, mongo.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Review not found", []global.ValidationError{
				{Field: "id", Message: "No review of yours exists with this id", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error deleting review: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete review", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Review deleted"}))
}
