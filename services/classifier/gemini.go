package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sushilkumar-me/civic-monitoring/models"
)

const civicIssuePrompt = `You are a highly advanced Senior Urban Planner and AI Infrastructure Specialist.
Your task is to analyze civic monitoring imagery with extreme precision.

Step-by-Step Analysis Rubric:
1. IDENTIFY: List all visible objects related to urban infrastructure or public safety.
2. EVALUATE: Check for structural damage, safety hazards, environmental risks, or public obstruction.
3. CLASSIFY: Based on the "Issue Categories" below, choose the most accurate fit.
4. PRIORITIZE: Assign priority based on the immediate risk to citizens.

Issue Categories:
- Pothole (High risk for vehicles)
- Garbage Dump (Environmental hazard, health risk)
- Stray Cattle (Critical danger on roads)
- Open Manhole (Life-threatening critical hazard)
- Road Obstruction (Fallen markers, construction debris)
- Waterlogging (Poor drainage, vector risk)
- Broken Streetlight (Safety/security risk)
- Illegal Construction (Zoning violation)
- Damaged Road (Surface cracking, unevenness)
- Sewage Overflow (Health emergency)
- Fallen Tree (Emergency obstruction)
- Traffic Violation (Illegal parking, wrong-way)
- Unauthorized Parking (Sidewalk blockage)
- General Civic Issue (Anything else)

You MUST respond with ONLY a valid JSON object:
{
  "reasoning": "Briefly explain the visual evidence and logic used for classification.",
  "issue_type": "<one of the categories above>",
  "priority": "<Critical, High, Medium, Low>",
  "confidence": <0-100 float>
}
`

// GeminiClassifier calls the Gemini vision API with a fixed prompt contract.
// It satisfies the Primary interface.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier builds the hosted classifier client. Returns an error
// when the API key is empty so the caller can run fallback-only.
func NewGeminiClassifier(ctx context.Context, apiKey string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GeminiClassifier{client: client, model: "gemini-2.0-flash"}, nil
}

func (g *GeminiClassifier) Close() error {
	return g.client.Close()
}

// Classify sends the image and prompt to Gemini and parses the structured
// reply. Any transport or parse error is returned so the caller can fall
// back to local detection.
func (g *GeminiClassifier) Classify(ctx context.Context, image []byte, mimeType string) (Result, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(500)

	format := strings.TrimPrefix(mimeType, "image/")

	resp, err := model.GenerateContent(ctx, genai.Text(civicIssuePrompt), genai.ImageData(format, image))
	if err != nil {
		return Result{}, err
	}

	text, err := responseText(resp)
	if err != nil {
		return Result{}, err
	}

	return parseModelReply(text)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model response has no text part")
	}
	return sb.String(), nil
}

// parseModelReply parses the JSON contract, tolerating a markdown code
// fence around it. Missing fields fall back to neutral defaults.
func parseModelReply(text string) (Result, error) {
	text = stripCodeFence(text)

	var reply struct {
		IssueType   string   `json:"issue_type"`
		Priority    string   `json:"priority"`
		Confidence  *float64 `json:"confidence"`
		Reasoning   string   `json:"reasoning"`
		Description string   `json:"description"`
	}
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return Result{}, fmt.Errorf("malformed model reply: %w", err)
	}

	result := Result{
		IssueType:  "General Civic Issue",
		Priority:   models.PriorityMedium,
		Confidence: 0,
		Reasoning:  "Standard visual analysis applied.",
	}
	if reply.IssueType != "" {
		result.IssueType = reply.IssueType
	}
	switch models.IssuePriority(reply.Priority) {
	case models.PriorityCritical, models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		result.Priority = models.IssuePriority(reply.Priority)
	}
	if reply.Confidence != nil {
		result.Confidence = *reply.Confidence
	}
	if reply.Reasoning != "" {
		result.Reasoning = reply.Reasoning
	} else if reply.Description != "" {
		result.Reasoning = reply.Description
	}

	return result, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
