package router

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inslanka/shop-api/pkg/ai"
	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/mongo"
)

// analyticsDateRange parses start/end query params, defaulting to the
// last 30 days
func analyticsDateRange(c *gin.Context) (start, end time.Time, ok bool) {
	end = time.Now()
	start = end.AddDate(0, 0, -30)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid start date", []global.ValidationError{
				{Field: "start", Message: "Date must be in YYYY-MM-DD format", Code: "invalid_format"},
			}))
			return start, end, false
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid end date", []global.ValidationError{
				{Field: "end", Message: "Date must be in YYYY-MM-DD format", Code: "invalid_format"},
			}))
			return start, end, false
		}
		// Include the whole end day
		end = parsed.AddDate(0, 0, 1)
	}
	return start, end, true
}

func GetSalesAnalytics(c *gin.Context) {
	start, end, ok := analyticsDateRange(c)
	if !ok {
		return
	}

	groupBy := c.DefaultQuery("group_by", "day")
	if groupBy != "day" && groupBy != "week" && groupBy != "month" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid grouping", []global.ValidationError{
			{Field: "group_by", Message: "group_by must be day, week or month", Code: "invalid_value"},
		}))
		return
	}

	result, err := mongo.GetSalesAnalytics(c.Request.Context(), start, end, groupBy)
	if err != nil {
		log.Printf("Error fetching sales analytics: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get sales analytics", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

func GetTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	products, err := mongo.GetTopProducts(c.Request.Context(), limit)
	if err != nil {
		log.Printf("Error fetching top products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get top products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func GetInventoryAnalytics(c *gin.Context) {
	result, err := mongo.GetInventoryAnalytics(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching inventory analytics: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get inventory analytics", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

func GenerateAISalesReport(c *gin.Context) {
	start, end, ok := analyticsDateRange(c)
	if !ok {
		return
	}

	groupBy := c.DefaultQuery("group_by", "day")
	report, err := ai.GenerateSalesReport(c.Request.Context(), start, end, groupBy)
	if err != nil {
		log.Printf("Error generating AI sales report: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate sales report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func GenerateAIInventoryReport(c *gin.Context) {
	report, err := ai.GenerateInventoryReport(c.Request.Context())
	if err != nil {
		log.Printf("Error generating AI inventory report: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate inventory report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func GenerateAIProductAnalysis(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	report, err := ai.GenerateTopProductsAnalysis(c.Request.Context(), limit)
	if err != nil {
		log.Printf("Error generating AI product analysis: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate product analysis", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
