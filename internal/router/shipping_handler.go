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

func GetShippingZones(c *gin.Context) {
	zones, err := mongo.ListShippingZones(c.Request.Context())
	if err != nil {
		log.Printf("Error listing shipping zones: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get shipping zones", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(zones))
}

// GetShippingMethods lists active methods serving a district,
// cheapest first
func GetShippingMethods(c *gin.Context) {
	district := c.Query("district")
	if district == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("district query parameter required", []global.ValidationError{
			{Field: "district", Message: "district query parameter is required", Code: "required"},
		}))
		return
	}

	methods, err := mongo.ListShippingMethodsForDistrict(c.Request.Context(), district)
	if err != nil {
		log.Printf("Error listing shipping methods: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get shipping methods", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(methods))
}

func CreateShippingZone(c *gin.Context) {
	var zone models.ShippingZone
	if err := c.ShouldBindJSON(&zone); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	created, err := mongo.CreateShippingZone(c.Request.Context(), &zone)
	if err != nil {
		log.Printf("Error creating shipping zone: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create shipping zone", nil))
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

func CreateShippingMethod(c *gin.Context) {
	var method models.ShippingMethod
	if err := c.ShouldBindJSON(&method); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	created, err := mongo.CreateShippingMethod(c.Request.Context(), &method)
	if err != nil {
		if errors.Is(err, mongo.ErrZoneNotServed) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Shipping zone not found", []global.ValidationError{
				{Field: "zone_id", Message: "No shipping zone exists with this id", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error creating shipping method: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create shipping method", nil))
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}
