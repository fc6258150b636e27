package classifier

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/sushilkumar-me/civic-monitoring/models"
)

// Result is a single issue classification.
type Result struct {
	IssueType  string
	Priority   models.IssuePriority
	Confidence float64
	Reasoning  string
}

// Primary is the hosted vision-language classification backend.
type Primary interface {
	Classify(ctx context.Context, image []byte, mimeType string) (Result, error)
}

// Detector is the local object-detection backend used on the fallback path.
type Detector interface {
	Detect(ctx context.Context, image []byte) (*Detections, error)
}

// Service routes a reported image through the primary classifier and falls
// back to rule-based classification over local detections when the primary
// is unavailable. Exactly one of the two paths is used per image.
// Construct once in main and pass to the handlers; either backend may be
// nil when unconfigured.
type Service struct {
	primary  Primary
	detector Detector
}

func NewService(primary Primary, detector Detector) *Service {
	return &Service{primary: primary, detector: detector}
}

// Classify reads the stored image and classifies it. It never returns an
// error: every failure degrades to a defined neutral result.
func (s *Service) Classify(ctx context.Context, imagePath string) Result {
	image, err := os.ReadFile(imagePath)
	if err != nil || len(image) == 0 {
		// Detection must not run on an unreadable image.
		return Result{
			IssueType:  "Unknown Issue",
			Priority:   models.PriorityLow,
			Confidence: 0,
			Reasoning:  "Image reading failed.",
		}
	}

	if s.primary != nil {
		result, err := s.primary.Classify(ctx, image, sniffMimeType(image))
		if err == nil {
			log.Printf("[classifier] primary: %s (%.0f%% confidence)", result.IssueType, result.Confidence)
			return result
		}
		log.Printf("[classifier] primary failed: %v. Falling back to local detection", err)
	}

	return s.classifyLocal(ctx, image)
}

func sniffMimeType(image []byte) string {
	return http.DetectContentType(image)
}

func (s *Service) classifyLocal(ctx context.Context, image []byte) Result {
	if s.detector == nil {
		return ClassifyDetections(NewDetections())
	}

	detections, err := s.detector.Detect(ctx, image)
	if err != nil {
		log.Printf("[classifier] local detection failed: %v", err)
		detections = NewDetections()
	}

	result := ClassifyDetections(detections)
	log.Printf("[classifier] fallback: %s (%.0f%% confidence)", result.IssueType, result.Confidence)
	return result
}
