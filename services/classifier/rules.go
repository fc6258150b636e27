package classifier

import (
	"fmt"
	"strings"

	"github.com/sushilkumar-me/civic-monitoring/models"
)

// Detections is the reduced output of an object detector: label counts plus
// the order labels were first seen, which keeps tie-breaking deterministic.
type Detections struct {
	counts map[string]int
	order  []string
}

func NewDetections() *Detections {
	return &Detections{counts: map[string]int{}}
}

// Add records one occurrence of label. Labels are matched lowercase.
func (d *Detections) Add(label string) {
	label = strings.ToLower(label)
	if _, seen := d.counts[label]; !seen {
		d.order = append(d.order, label)
	}
	d.counts[label]++
}

func (d *Detections) Count(label string) int { return d.counts[label] }

// Labels returns the detected labels in first-seen order.
func (d *Detections) Labels() []string { return d.order }

func (d *Detections) Empty() bool { return len(d.order) == 0 }

func (d *Detections) anyOf(labels []string) []string {
	var found []string
	for _, l := range labels {
		if d.counts[l] > 0 {
			found = append(found, l)
		}
	}
	return found
}

// mostFrequent returns the label with the highest count, ties broken by
// first-seen order.
func (d *Detections) mostFrequent() string {
	best := ""
	bestCount := 0
	for _, l := range d.order {
		if d.counts[l] > bestCount {
			best = l
			bestCount = d.counts[l]
		}
	}
	return best
}

var (
	strayAnimalLabels = []string{"cow", "horse", "sheep", "elephant", "bear"}
	sidewalkLabels    = []string{"bench", "potted plant", "bicycle", "motorcycle"}
	litterLabels      = []string{"bottle", "cup", "handbag", "backpack"}
	trafficLabels     = []string{"traffic light", "stop sign"}
)

// ClassifyDetections maps detector output to an issue classification using
// an ordered rule list. The first matching rule wins.
func ClassifyDetections(d *Detections) Result {
	if found := d.anyOf(strayAnimalLabels); len(found) > 0 {
		return Result{
			IssueType:  "Stray Animal/Cattle",
			Priority:   models.PriorityCritical,
			Confidence: 85,
			Reasoning:  fmt.Sprintf("Detected large animal (%s) in transit zone.", strings.Join(found, ", ")),
		}
	}

	if d.Count("fire hydrant") > 0 {
		return Result{
			IssueType:  "Infrastructure Leak/Obstruction",
			Priority:   models.PriorityHigh,
			Confidence: 80,
			Reasoning:  "Fire hydrant detected; possible water leakage or illegal parking.",
		}
	}

	if d.Count("truck") > 1 || d.Count("bus") > 1 {
		return Result{
			IssueType:  "Heavy Vehicle Obstruction",
			Priority:   models.PriorityHigh,
			Confidence: 75,
			Reasoning:  "Multiple heavy vehicles detected creating congestion.",
		}
	}

	if d.Count("car") > 4 {
		return Result{
			IssueType:  "Unauthorized Parking/Congestion",
			Priority:   models.PriorityMedium,
			Confidence: 70,
			Reasoning:  fmt.Sprintf("High vehicle density (%d cars) suggests illegal parking or congestion.", d.Count("car")),
		}
	}

	if found := d.anyOf(trafficLabels); len(found) > 0 {
		return Result{
			IssueType:  "Traffic Infrastructure Issue",
			Priority:   models.PriorityMedium,
			Confidence: 65,
			Reasoning:  fmt.Sprintf("Traffic control equipment (%s) flagged for inspection.", strings.Join(found, ", ")),
		}
	}

	if d.Count("person") > 10 {
		return Result{
			IssueType:  "Public Gathering/Crowd",
			Priority:   models.PriorityHigh,
			Confidence: 60,
			Reasoning:  fmt.Sprintf("Large crowd of %d people detected in public space.", d.Count("person")),
		}
	}

	if found := d.anyOf(sidewalkLabels); len(found) > 0 {
		return Result{
			IssueType:  "Sidewalk Obstruction",
			Priority:   models.PriorityLow,
			Confidence: 55,
			Reasoning:  fmt.Sprintf("Objects (%s) obstructing pedestrian path.", strings.Join(found, ", ")),
		}
	}

	if found := d.anyOf(litterLabels); len(found) > 0 {
		return Result{
			IssueType:  "Littering/Sanitation Issue",
			Priority:   models.PriorityMedium,
			Confidence: 50,
			Reasoning:  fmt.Sprintf("Discarded items (%s) indicate littering.", strings.Join(found, ", ")),
		}
	}

	if !d.Empty() {
		return Result{
			IssueType:  "Infrastructure Monitoring",
			Priority:   models.PriorityLow,
			Confidence: 45,
			Reasoning:  fmt.Sprintf("Scene contains mostly %s; no acute hazard identified.", d.mostFrequent()),
		}
	}

	return Result{
		IssueType:  "General Civic Issue",
		Priority:   models.PriorityLow,
		Confidence: 30,
		Reasoning:  "No significant urban anomalies detected. Manual review recommended.",
	}
}
