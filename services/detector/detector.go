package detector

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sushilkumar-me/civic-monitoring/services/classifier"
)

// Confidence threshold for the fallback path; more sensitive than typical
// defaults so the rule classifier has enough evidence to work with.
const defaultThreshold = 0.25

// Client talks to the local object-detection inference service
// (a YOLO model behind an HTTP endpoint). It satisfies
// classifier.Detector.
type Client struct {
	baseURL    string
	threshold  float64
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		threshold:  defaultThreshold,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type detectRequest struct {
	Image      string  `json:"image"`
	Confidence float64 `json:"confidence"`
}

type detectResponse struct {
	Detections []struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	} `json:"detections"`
}

// Detect posts the image to the inference service and reduces the reply to
// label counts.
func (c *Client) Detect(ctx context.Context, image []byte) (*classifier.Detections, error) {
	body, err := json.Marshal(detectRequest{
		Image:      base64.StdEncoding.EncodeToString(image),
		Confidence: c.threshold,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detector returned status %d", resp.StatusCode)
	}

	var reply detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, err
	}

	detections := classifier.NewDetections()
	for _, d := range reply.Detections {
		if d.Confidence >= c.threshold {
			detections.Add(d.Label)
		}
	}
	return detections, nil
}
