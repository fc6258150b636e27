package classifier

import (
	"strings"
	"testing"

	"github.com/sushilkumar-me/civic-monitoring/models"
)

func detectionsFrom(pairs ...interface{}) *Detections {
	d := NewDetections()
	for i := 0; i < len(pairs); i += 2 {
		label := pairs[i].(string)
		count := pairs[i+1].(int)
		for j := 0; j < count; j++ {
			d.Add(label)
		}
	}
	return d
}

func TestClassifyDetectionsRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		detections     *Detections
		wantType       string
		wantPriority   models.IssuePriority
		wantConfidence float64
	}{
		{
			name:           "stray animal",
			detections:     detectionsFrom("cow", 1),
			wantType:       "Stray Animal/Cattle",
			wantPriority:   models.PriorityCritical,
			wantConfidence: 85,
		},
		{
			name:           "fire hydrant",
			detections:     detectionsFrom("fire hydrant", 1),
			wantType:       "Infrastructure Leak/Obstruction",
			wantPriority:   models.PriorityHigh,
			wantConfidence: 80,
		},
		{
			name:           "two trucks",
			detections:     detectionsFrom("truck", 2),
			wantType:       "Heavy Vehicle Obstruction",
			wantPriority:   models.PriorityHigh,
			wantConfidence: 75,
		},
		{
			name:           "single truck is not an obstruction",
			detections:     detectionsFrom("truck", 1),
			wantType:       "Infrastructure Monitoring",
			wantPriority:   models.PriorityLow,
			wantConfidence: 45,
		},
		{
			name:           "two buses",
			detections:     detectionsFrom("bus", 2),
			wantType:       "Heavy Vehicle Obstruction",
			wantPriority:   models.PriorityHigh,
			wantConfidence: 75,
		},
		{
			name:           "five cars",
			detections:     detectionsFrom("car", 5),
			wantType:       "Unauthorized Parking/Congestion",
			wantPriority:   models.PriorityMedium,
			wantConfidence: 70,
		},
		{
			name:           "four cars stay below the parking rule",
			detections:     detectionsFrom("car", 4),
			wantType:       "Infrastructure Monitoring",
			wantPriority:   models.PriorityLow,
			wantConfidence: 45,
		},
		{
			name:           "stop sign",
			detections:     detectionsFrom("stop sign", 1),
			wantType:       "Traffic Infrastructure Issue",
			wantPriority:   models.PriorityMedium,
			wantConfidence: 65,
		},
		{
			name:           "crowd of eleven",
			detections:     detectionsFrom("person", 11),
			wantType:       "Public Gathering/Crowd",
			wantPriority:   models.PriorityHigh,
			wantConfidence: 60,
		},
		{
			name:           "bench with two cars matches the sidewalk rule",
			detections:     detectionsFrom("bench", 1, "car", 2),
			wantType:       "Sidewalk Obstruction",
			wantPriority:   models.PriorityLow,
			wantConfidence: 55,
		},
		{
			name:           "bottle",
			detections:     detectionsFrom("bottle", 1),
			wantType:       "Littering/Sanitation Issue",
			wantPriority:   models.PriorityMedium,
			wantConfidence: 50,
		},
		{
			name:           "unmatched objects",
			detections:     detectionsFrom("chair", 2, "laptop", 1),
			wantType:       "Infrastructure Monitoring",
			wantPriority:   models.PriorityLow,
			wantConfidence: 45,
		},
		{
			name:           "nothing detected",
			detections:     NewDetections(),
			wantType:       "General Civic Issue",
			wantPriority:   models.PriorityLow,
			wantConfidence: 30,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyDetections(tc.detections)
			if got.IssueType != tc.wantType {
				t.Errorf("issue type = %q, want %q", got.IssueType, tc.wantType)
			}
			if got.Priority != tc.wantPriority {
				t.Errorf("priority = %q, want %q", got.Priority, tc.wantPriority)
			}
			if got.Confidence != tc.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tc.wantConfidence)
			}
			if got.Reasoning == "" {
				t.Error("reasoning must not be empty")
			}
		})
	}
}

func TestClassifyDetectionsFirstMatchWins(t *testing.T) {
	t.Parallel()

	// Every rule's condition holds at once; the animal rule must still win.
	d := detectionsFrom(
		"cow", 1, "fire hydrant", 1, "truck", 2, "car", 5,
		"traffic light", 1, "person", 11, "bench", 1, "bottle", 1,
	)

	got := ClassifyDetections(d)
	if got.IssueType != "Stray Animal/Cattle" {
		t.Fatalf("issue type = %q, want Stray Animal/Cattle", got.IssueType)
	}
	if !strings.Contains(got.Reasoning, "cow") {
		t.Errorf("reasoning %q should name the triggering animal", got.Reasoning)
	}
}

func TestClassifyDetectionsIsDeterministic(t *testing.T) {
	t.Parallel()

	d := detectionsFrom("chair", 2, "laptop", 2)

	first := ClassifyDetections(d)
	for i := 0; i < 50; i++ {
		if got := ClassifyDetections(d); got != first {
			t.Fatalf("run %d: got %+v, want %+v", i, got, first)
		}
	}

	// Tie on counts: the first-seen label wins the monitoring reasoning.
	if !strings.Contains(first.Reasoning, "chair") {
		t.Errorf("reasoning %q should name the first-seen most frequent label", first.Reasoning)
	}
}

func TestDetectionsLowercasesAndCounts(t *testing.T) {
	t.Parallel()

	d := NewDetections()
	d.Add("Cow")
	d.Add("COW")
	d.Add("truck")

	if got := d.Count("cow"); got != 2 {
		t.Errorf("Count(cow) = %d, want 2", got)
	}
	if got := d.Labels(); len(got) != 2 || got[0] != "cow" || got[1] != "truck" {
		t.Errorf("Labels() = %v, want [cow truck]", got)
	}
}
