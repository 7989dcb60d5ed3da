package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inslanka/shop-api/pkg/mongo"
)

// AIReportResponse wraps raw analytics data with optional AI commentary.
// When the AI service is disabled the raw data is still returned.
type AIReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData    interface{} `json:"raw_data"`
	AIInsights string      `json:"ai_insights,omitempty"`
	Summary    string      `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

// GenerateSalesReport generates AI-powered insights from sales analytics data
func GenerateSalesReport(ctx context.Context, start, end time.Time, groupBy string) (*AIReportResponse, error) {
	salesData, err := mongo.GetSalesAnalytics(ctx, start, end, groupBy)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch sales data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: salesData,
			Summary: "Sales data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatSalesDataPrompt(salesData)
		aiInsights, err := generateCompletion(ctx, SalesReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated sales insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw sales data (AI insights unavailable)"
	}

	return response, nil
}

// GenerateInventoryReport generates AI-powered inventory analysis
func GenerateInventoryReport(ctx context.Context) (*AIReportResponse, error) {
	inventoryData, err := mongo.GetInventoryAnalytics(ctx)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch inventory data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: inventoryData,
			Summary: "Inventory status data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatInventoryDataPrompt(inventoryData)
		aiInsights, err := generateCompletion(ctx, InventoryReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated inventory insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw inventory data (AI insights unavailable)"
	}

	return response, nil
}

// GenerateTopProductsAnalysis generates AI-powered top products analysis
func GenerateTopProductsAnalysis(ctx context.Context, limit int) (*AIReportResponse, error) {
	topProducts, err := mongo.GetTopProducts(ctx, limit)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch top products data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: topProducts,
			Summary: "Top products data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatTopProductsDataPrompt(topProducts, limit)
		aiInsights, err := generateCompletion(ctx, TopProductsSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated top products insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw top products data (AI insights unavailable)"
	}

	return response, nil
}

func formatSalesDataPrompt(salesData interface{}) string {
	jsonData, _ := json.MarshalIndent(salesData, "", "  ")
	return fmt.Sprintf(`Analyze the following sales analytics data and provide business insights:

%s

Please provide:
1. Key performance highlights and trends
2. Areas of concern or opportunity
3. Specific recommendations for business growth
4. Actionable next steps for the management team`, string(jsonData))
}

func formatInventoryDataPrompt(inventoryData interface{}) string {
	jsonData, _ := json.MarshalIndent(inventoryData, "", "  ")
	return fmt.Sprintf(`Analyze the following inventory status data and provide operational insights:

%s

Please provide:
1. Immediate actions required for stock management
2. Demand patterns and forecasting insights
3. Reorder priorities for low-stock items`, string(jsonData))
}

func formatTopProductsDataPrompt(productsData interface{}, limit int) string {
	jsonData, _ := json.MarshalIndent(productsData, "", "  ")
	return fmt.Sprintf(`Analyze the following top %d products data and provide strategic insights:

%s

Please provide:
1. Success factors driving top product performance
2. Market trends and opportunities identified
3. Product mix optimization recommendations`, limit, string(jsonData))
}
