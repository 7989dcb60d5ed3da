package router

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
	"github.com/inslanka/shop-api/pkg/mongo"
)

type validateCouponRequest struct {
	Code     string  `json:"code" binding:"required,min=2,max=50"`
	Subtotal float64 `json:"subtotal" binding:"gte=0"`
}

// ValidateCoupon previews a coupon against a subtotal without
// redeeming it
func ValidateCoupon(c *gin.Context) {
	var req validateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	coupon, err := mongo.GetCouponByCode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, mongo.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Coupon not found", []global.ValidationError{
				{Field: "code", Message: "Coupon code not found", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching coupon: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to validate coupon", nil))
		return
	}

	valid, reason := coupon.IsValid(time.Now())
	if valid && req.Subtotal < coupon.MinimumOrderAmount {
		valid, reason = false, "Order subtotal is below the coupon minimum"
	}

	result := map[string]interface{}{
		"code":   coupon.Code,
		"valid":  valid,
		"reason": reason,
	}
	if valid {
		discount, _ := coupon.Discount(req.Subtotal, 0)
		result["discount"] = discount
		result["type"] = coupon.Type
	}

	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

func ListCoupons(c *gin.Context) {
	coupons, err := mongo.ListCoupons(c.Request.Context())
	if err != nil {
		log.Printf("Error listing coupons: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get coupons", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(coupons))
}

func CreateCoupon(c *gin.Context) {
	var req models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	coupon, err := mongo.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, mongo.ErrCouponCodeTaken) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Coupon code already exists", []global.ValidationError{
				{Field: "code", Message: "A coupon with this code already exists", Code: "duplicate"},
			}))
			return
		}
		log.Printf("Error creating coupon: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create coupon", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(coupon))
}

func DeactivateCoupon(c *gin.Context) {
	coupon, err := mongo.DeactivateCoupon(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, mongo.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Coupon not found", []global.ValidationError{
				{Field: "code", Message: "Coupon code not found", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error deactivating coupon: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to deactivate coupon", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(coupon))
}

func GetLiveFlashSales(c *gin.Context) {
	sales, err := mongo.ListLiveFlashSales(c.Request.Context(), time.Now())
	if err != nil {
		log.Printf("Error listing flash sales: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get flash sales", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(sales))
}

func CreateFlashSale(c *gin.Context) {
	var sale models.FlashSale
	if err := c.ShouldBindJSON(&sale); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if !sale.EndsAt.After(sale.StartsAt) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid sale window", []global.ValidationError{
			{Field: "ends_at", Message: "Sale must end after it starts", Code: "invalid_window"},
		}))
		return
	}

	created, err := mongo.CreateFlashSale(c.Request.Context(), &sale)
	if err != nil {
		log.Printf("Error creating flash sale: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create flash sale", nil))
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}
