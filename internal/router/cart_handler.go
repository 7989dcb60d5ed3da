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

func GetCart(c *gin.Context) {
	view, err := mongo.GetCartView(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("Error fetching cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

func AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	cart, err := mongo.AddCartItem(c.Request.Context(), currentUserID(c), req.SKU, req.Quantity)
	if err != nil {
		if errors.Is(err, mongo.ErrVariantNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product variant not found", []global.ValidationError{
				{Field: "sku", Message: "No active variant exists with this SKU", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error adding to cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add item to cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func UpdateCartItem(c *gin.Context) {
	sku := c.Param("sku")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	cart, err := mongo.UpdateCartItem(c.Request.Context(), currentUserID(c), sku, req.Quantity)
	if err != nil {
		if errors.Is(err, mongo.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found in cart", []global.ValidationError{
				{Field: "sku", Message: "The cart does not contain this SKU", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error updating cart item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart item", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func RemoveFromCart(c *gin.Context) {
	cart, err := mongo.RemoveCartItem(c.Request.Context(), currentUserID(c), c.Param("sku"))
	if err != nil {
		log.Printf("Error removing cart item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to remove cart item", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func ClearCart(c *gin.Context) {
	if err := mongo.ClearCartItems(c.Request.Context(), currentUserID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Cart cleared"}))
}
