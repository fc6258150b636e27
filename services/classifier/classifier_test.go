package classifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sushilkumar-me/civic-monitoring/models"
)

type stubPrimary struct {
	result Result
	err    error
	calls  int
}

func (s *stubPrimary) Classify(ctx context.Context, image []byte, mimeType string) (Result, error) {
	s.calls++
	return s.result, s.err
}

type stubDetector struct {
	detections *Detections
	err        error
	calls      int
}

func (s *stubDetector) Detect(ctx context.Context, image []byte) (*Detections, error) {
	s.calls++
	return s.detections, s.err
}

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.jpg")
	if err := os.WriteFile(path, []byte("\xff\xd8\xff\xe0fake-jpeg-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestServicePrimaryResultIsUsed(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{result: Result{
		IssueType:  "Pothole",
		Priority:   models.PriorityHigh,
		Confidence: 90,
		Reasoning:  "Surface break across the lane.",
	}}
	fallback := &stubDetector{detections: NewDetections()}

	svc := NewService(primary, fallback)
	got := svc.Classify(context.Background(), writeTempImage(t))

	if got != primary.result {
		t.Errorf("got %+v, want primary result %+v", got, primary.result)
	}
	if fallback.calls != 0 {
		t.Errorf("detector called %d times, want 0 when primary succeeds", fallback.calls)
	}
}

func TestServiceFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	detections := NewDetections()
	detections.Add("cow")

	primary := &stubPrimary{err: errors.New("quota exceeded")}
	fallback := &stubDetector{detections: detections}

	svc := NewService(primary, fallback)
	got := svc.Classify(context.Background(), writeTempImage(t))

	if got.IssueType != "Stray Animal/Cattle" {
		t.Errorf("issue type = %q, want fallback classification", got.IssueType)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("primary calls = %d, detector calls = %d, want 1 and 1", primary.calls, fallback.calls)
	}
}

func TestServiceWithoutPrimaryUsesDetector(t *testing.T) {
	t.Parallel()

	detections := NewDetections()
	for i := 0; i < 5; i++ {
		detections.Add("car")
	}

	svc := NewService(nil, &stubDetector{detections: detections})
	got := svc.Classify(context.Background(), writeTempImage(t))

	if got.IssueType != "Unauthorized Parking/Congestion" {
		t.Errorf("issue type = %q, want Unauthorized Parking/Congestion", got.IssueType)
	}
}

func TestServiceDetectorErrorDegradesToGeneric(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &stubDetector{err: errors.New("detector down")})
	got := svc.Classify(context.Background(), writeTempImage(t))

	if got.IssueType != "General Civic Issue" {
		t.Errorf("issue type = %q, want General Civic Issue", got.IssueType)
	}
}

func TestServiceUnreadableImageSkipsDetection(t *testing.T) {
	t.Parallel()

	primary := &stubPrimary{result: Result{IssueType: "Pothole"}}
	fallback := &stubDetector{detections: NewDetections()}

	svc := NewService(primary, fallback)
	got := svc.Classify(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))

	if got.IssueType != "Unknown Issue" || got.Confidence != 0 {
		t.Errorf("got %+v, want Unknown Issue with zero confidence", got)
	}
	if primary.calls != 0 || fallback.calls != 0 {
		t.Errorf("classifiers must not run on an unreadable image (primary=%d, detector=%d)", primary.calls, fallback.calls)
	}
}
