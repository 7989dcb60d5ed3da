package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inslanka/shop-api/pkg/auth"
	"github.com/inslanka/shop-api/pkg/checkout"
	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
	"github.com/inslanka/shop-api/pkg/mongo"
)

// Checkout converts the caller's cart into an order. All stock,
// coupon and cart mutations happen in a single transaction.
func Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	order, err := mongo.Checkout(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}

func respondCheckoutError(c *gin.Context, err error) {
	var stockErr *checkout.InsufficientStockError
	var couponErr *checkout.InvalidCouponError
	var variantErr *checkout.VariantNotFoundError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart is empty", []global.ValidationError{
			{Field: "cart", Message: "Add items to the cart before checking out", Code: "empty_cart"},
		}))
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, global.ErrorResponse("Insufficient stock", []global.ValidationError{
			{Field: "sku", Message: stockErr.Error(), Code: "insufficient_stock"},
		}))
	case errors.As(err, &couponErr):
		c.JSON(http.StatusUnprocessableEntity, global.ErrorResponse("Coupon rejected", []global.ValidationError{
			{Field: "coupon_code", Message: couponErr.Reason, Code: "invalid_coupon"},
		}))
	case errors.As(err, &variantErr):
		c.JSON(http.StatusConflict, global.ErrorResponse("Product no longer available", []global.ValidationError{
			{Field: "sku", Message: variantErr.Error(), Code: "variant_unavailable"},
		}))
	case errors.Is(err, mongo.ErrShippingMethodNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Shipping method not found", []global.ValidationError{
			{Field: "shipping_method_id", Message: "No active shipping method with this id", Code: "not_found"},
		}))
	case errors.Is(err, mongo.ErrZoneNotServed):
		c.JSON(http.StatusUnprocessableEntity, global.ErrorResponse("Destination not served", []global.ValidationError{
			{Field: "shipping_address.district", Message: "The selected shipping method does not serve this district", Code: "zone_not_served"},
		}))
	default:
		log.Printf("Checkout failed: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Checkout failed", nil))
	}
}

func GetMyOrders(c *gin.Context) {
	page, limit := pagination(c)
	orders, err := mongo.ListOrdersForUser(c.Request.Context(), currentUserID(c), page, limit)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get orders", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

// GetOrderByNumber returns an order. Customers only see their own
// orders; staff and admins can look up any order.
func GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	ctx := c.Request.Context()

	var order *models.Order
	var err error
	if auth.Allows(currentRole(c), auth.ActionManageOrders) {
		order, err = mongo.GetOrderByNumber(ctx, orderNumber)
	} else {
		order, err = mongo.GetOrderForUser(ctx, currentUserID(c), orderNumber)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
				{Field: "orderNumber", Message: "No order exists with this number", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching order: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get order", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// CancelOrder cancels one of the caller's orders and restores stock
func CancelOrder(c *gin.Context) {
	order, err := mongo.CancelOrder(c.Request.Context(), currentUserID(c), c.Param("orderNumber"), "Cancelled by customer")
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
				{Field: "orderNumber", Message: "No order exists with this number", Code: "not_found"},
			}))
		case errors.Is(err, mongo.ErrNotCancellable):
			c.JSON(http.StatusConflict, global.ErrorResponse("Order can no longer be cancelled", []global.ValidationError{
				{Field: "status", Message: "Orders that have shipped cannot be cancelled", Code: "not_cancellable"},
			}))
		default:
			log.Printf("Error cancelling order: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to cancel order", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// UpdateOrderStatus moves an order along its lifecycle (staff only)
func UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	order, err := mongo.UpdateOrderStatus(
		c.Request.Context(),
		c.Param("orderNumber"),
		models.OrderStatus(req.Status),
		req.Note,
		currentUserID(c).Hex(),
		req.TrackingNumber,
	)
	if err != nil {
		var transitionErr *models.InvalidTransitionError
		switch {
		case errors.Is(err, mongo.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", []global.ValidationError{
				{Field: "orderNumber", Message: "No order exists with this number", Code: "not_found"},
			}))
		case errors.As(err, &transitionErr):
			c.JSON(http.StatusConflict, global.ErrorResponse("Invalid status transition", []global.ValidationError{
				{Field: "status", Message: transitionErr.Error(), Code: "invalid_transition"},
			}))
		default:
			log.Printf("Error updating order status: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update order status", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

type paymentWebhookPayload struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=succeeded failed"`
	Reference   string `json:"reference"`
}

// PaymentWebhook is the gateway callback. A succeeded payment confirms
// the order; a failed payment cancels it and restores stock.
func PaymentWebhook(c *gin.Context) {
	var payload paymentWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid webhook payload", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	ctx := c.Request.Context()

	if payload.Status == "succeeded" {
		order, err := mongo.UpdateOrderStatus(ctx, payload.OrderNumber, models.OrderConfirmed,
			"Payment received ("+payload.Reference+")", "payment-gateway", "")
		if err != nil {
			respondWebhookError(c, err)
			return
		}
		c.JSON(http.StatusOK, global.SuccessResponse(order))
		return
	}

	// Failed payment: cancel on behalf of the order's owner so the
	// reserved stock goes back
	order, err := mongo.GetOrderByNumber(ctx, payload.OrderNumber)
	if err != nil {
		respondWebhookError(c, err)
		return
	}

	cancelled, err := mongo.CancelOrder(ctx, order.UserID, payload.OrderNumber, "Payment failed ("+payload.Reference+")")
	if err != nil {
		respondWebhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cancelled))
}

func respondWebhookError(c *gin.Context, err error) {
	var transitionErr *models.InvalidTransitionError
	switch {
	case errors.Is(err, mongo.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found", nil))
	case errors.As(err, &transitionErr), errors.Is(err, mongo.ErrNotCancellable):
		// Already processed; webhooks may be retried
		c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Order already processed"}))
	default:
		log.Printf("Payment webhook failed: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process payment webhook", nil))
	}
}
