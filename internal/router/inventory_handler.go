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

func ListStock(c *gin.Context) {
	page, limit := pagination(c)
	stock, err := mongo.ListStock(c.Request.Context(), page, limit)
	if err != nil {
		log.Printf("Error listing stock: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get stock levels", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(stock))
}

func GetStockBySKU(c *gin.Context) {
	stock, err := mongo.GetStockBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		if errors.Is(err, mongo.ErrStockNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Stock record not found", []global.ValidationError{
				{Field: "sku", Message: "No stock record exists for this SKU", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching stock: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get stock", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(stock))
}

func GetStockMovements(c *gin.Context) {
	page, limit := pagination(c)
	movements, err := mongo.ListMovements(c.Request.Context(), c.Param("sku"), page, limit)
	if err != nil {
		log.Printf("Error listing stock movements: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get stock movements", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(movements))
}

type setStockLevelRequest struct {
	Quantity          int `json:"quantity" binding:"gte=0"`
	LowStockThreshold int `json:"low_stock_threshold" binding:"gte=0"`
}

// SetStockLevel creates or replaces the stock record for a variant SKU
func SetStockLevel(c *gin.Context) {
	var req setStockLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	stock, err := mongo.EnsureStock(c.Request.Context(), c.Param("sku"), req.Quantity, req.LowStockThreshold)
	if err != nil {
		if errors.Is(err, mongo.ErrVariantNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product variant not found", []global.ValidationError{
				{Field: "sku", Message: "No variant exists with this SKU", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error setting stock level: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to set stock level", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(stock))
}

// AdjustStock applies a signed quantity change with an audit movement
func AdjustStock(c *gin.Context) {
	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	stock, err := mongo.AdjustStock(
		c.Request.Context(),
		c.Param("sku"),
		req.QuantityChange,
		models.MovementReason(req.Reason),
		req.Note,
		currentUserID(c).Hex(),
	)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrStockNotFound):
			c.JSON(http.StatusNotFound, global.ErrorResponse("Stock record not found", []global.ValidationError{
				{Field: "sku", Message: "No stock record exists for this SKU", Code: "not_found"},
			}))
		case errors.Is(err, mongo.ErrStockWouldGoNegative):
			c.JSON(http.StatusConflict, global.ErrorResponse("Adjustment rejected", []global.ValidationError{
				{Field: "quantity_change", Message: "Stock quantity cannot go negative", Code: "negative_stock"},
			}))
		default:
			log.Printf("Error adjusting stock: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to adjust stock", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(stock))
}
