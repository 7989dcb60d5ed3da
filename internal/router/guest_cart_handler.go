package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
	"github.com/inslanka/shop-api/pkg/mongo"
	"github.com/inslanka/shop-api/pkg/redis"
)

const guestSessionCookie = "guest_session_id"

// guestSessionID returns the caller's guest session id, minting a new
// one when the request carries none. The id is echoed back both as a
// cookie and in the X-Session-ID header.
func guestSessionID(c *gin.Context) string {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		sessionID, _ = c.Cookie(guestSessionCookie)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	c.SetCookie(guestSessionCookie, sessionID, 60*60*24*30, "/", "", false, true)
	c.Header("X-Session-ID", sessionID)
	return sessionID
}

func GetGuestCart(c *gin.Context) {
	cart, err := redis.GetSessionCart(c.Request.Context(), guestSessionID(c))
	if err != nil {
		log.Printf("Error fetching guest cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func AddToGuestCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	// Resolve the variant's product, cache first
	product, err := redis.GetProductBySKUFromCache(ctx, req.SKU)
	if err != nil {
		product, err = mongo.GetProductByVariantSKU(ctx, req.SKU)
		if err != nil {
			if errors.Is(err, mongo.ErrVariantNotFound) || errors.Is(err, mongo.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, global.ErrorResponse("Product variant not found", []global.ValidationError{
					{Field: "sku", Message: "No active variant exists with this SKU", Code: "not_found"},
				}))
				return
			}
			log.Printf("Error resolving product for guest cart: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add item to cart", nil))
			return
		}
	}

	cart, err := redis.AddToSessionCart(ctx, guestSessionID(c), product, req.SKU, req.Quantity)
	if err != nil {
		log.Printf("Error adding to guest cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add item to cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func UpdateGuestCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	cart, err := redis.UpdateSessionCartItem(c.Request.Context(), guestSessionID(c), c.Param("sku"), req.Quantity)
	if err != nil {
		if err.Error() == "item not found in cart" {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found in cart", []global.ValidationError{
				{Field: "sku", Message: "The cart does not contain this SKU", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error updating guest cart item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart item", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func ClearGuestCart(c *gin.Context) {
	if err := redis.ClearSessionCart(c.Request.Context(), guestSessionID(c)); err != nil {
		log.Printf("Error clearing guest cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to clear cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Cart cleared"}))
}
