package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AnalysisInput carries everything the model needs to reason about a
// product's depletion rate. HistoricalSalesData is a JSON array of
// {date, quantity} sale events.
type AnalysisInput struct {
	ProductName         string
	HistoricalSalesData string
	CurrentStockLevel   int
	LeadTimeDays        int
	TargetServiceLevel  float64
}

// AnalysisResult is the model's structured answer.
type AnalysisResult struct {
	SuggestedRestockAmount int64  `json:"suggested_restock_amount"`
	AnalysisReport         string `json:"analysis_report"`
}

// AnalyzeStockDepletion asks Gemini to estimate depletion and suggest a
// reorder quantity. The model is forced to answer in JSON matching
// AnalysisResult. The caller treats this as an opaque remote function:
// a failure here never touches ledger state.
func AnalyzeStockDepletion(ctx context.Context, apiKey, modelName string, in AnalysisInput) (*AnalysisResult, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggested_restock_amount": {
				Type:        genai.TypeInteger,
				Description: "Recommended number of units to reorder now",
			},
			"analysis_report": {
				Type:        genai.TypeString,
				Description: "Short narrative explaining the depletion trend and the recommendation",
			},
		},
		Required: []string{"suggested_restock_amount", "analysis_report"},
	}

	prompt := fmt.Sprintf(`You are an inventory analyst for a small bar.

Product: %s
Current stock level: %d units
Supplier lead time: %d days
Target service level: %.2f

Historical sale events for this product (JSON, one entry per sale line):
%s

Estimate the average daily depletion rate, project when stock will run out,
and suggest how many units to reorder now so the bar does not stock out
before a new delivery arrives at the target service level. If the sales
history is too thin to be confident, say so in the report and suggest a
conservative amount.`,
		in.ProductName, in.CurrentStockLevel, in.LeadTimeDays, in.TargetServiceLevel, in.HistoricalSalesData)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("analysis returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			var result AnalysisResult
			if err := json.Unmarshal([]byte(txt), &result); err != nil {
				return nil, fmt.Errorf("failed to parse analysis response: %w", err)
			}
			return &result, nil
		}
	}

	return nil, fmt.Errorf("analysis returned no text part")
}
