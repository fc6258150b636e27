package reporting

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/sushilkumar-me/civic-monitoring/models"
)

// Issue types that are treated as critical on the admin dashboard no
// matter what priority was recorded on the individual report.
var criticalTypes = map[string]bool{
	"Stray Cattle":        true,
	"Open Manhole":        true,
	"Stray Animal/Cattle": true,
}

type WardStat struct {
	Ward   int `json:"ward"`
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

type TypeStat struct {
	IssueType string `json:"issueType"`
	Count     int    `json:"count"`
}

type Summary struct {
	Total      int        `json:"total"`
	Open       int        `json:"open"`
	InProgress int        `json:"inProgress"`
	Closed     int        `json:"closed"`
	Critical   int        `json:"critical"`
	Wards      []WardStat `json:"wardStats"`
	Types      []TypeStat `json:"typeStats"`
}

// ResolutionStats summarizes how long closed issues took to resolve.
type ResolutionStats struct {
	Resolved    int     `json:"resolved"`
	MeanHours   float64 `json:"meanHours"`
	MedianHours float64 `json:"medianHours"`
}

// Summarize computes the dashboard counts over the full issue set. It
// mutates nothing and returns empty (not nil) breakdowns for no issues.
func Summarize(issues []models.Issue) Summary {
	summary := Summary{
		Wards: []WardStat{},
		Types: []TypeStat{},
	}

	wardIndex := map[int]int{}
	typeIndex := map[string]int{}

	for _, issue := range issues {
		summary.Total++
		switch issue.Status {
		case models.StatusOpen:
			summary.Open++
		case models.StatusInProgress:
			summary.InProgress++
		case models.StatusClosed:
			summary.Closed++
		}
		if criticalTypes[issue.IssueType] {
			summary.Critical++
		}

		wi, ok := wardIndex[issue.Ward]
		if !ok {
			wi = len(summary.Wards)
			wardIndex[issue.Ward] = wi
			summary.Wards = append(summary.Wards, WardStat{Ward: issue.Ward})
		}
		summary.Wards[wi].Total++
		if issue.Status == models.StatusOpen {
			summary.Wards[wi].Open++
		}
		if issue.Status == models.StatusClosed {
			summary.Wards[wi].Closed++
		}

		ti, ok := typeIndex[issue.IssueType]
		if !ok {
			ti = len(summary.Types)
			typeIndex[issue.IssueType] = ti
			summary.Types = append(summary.Types, TypeStat{IssueType: issue.IssueType})
		}
		summary.Types[ti].Count++
	}

	sort.Slice(summary.Wards, func(i, j int) bool {
		return summary.Wards[i].Ward < summary.Wards[j].Ward
	})
	sort.Slice(summary.Types, func(i, j int) bool {
		if summary.Types[i].Count != summary.Types[j].Count {
			return summary.Types[i].Count > summary.Types[j].Count
		}
		return summary.Types[i].IssueType < summary.Types[j].IssueType
	})

	return summary
}

// Resolution computes mean and median hours-to-close over issues that were
// actually closed with a resolution timestamp.
func Resolution(issues []models.Issue) ResolutionStats {
	var hours []float64
	for _, issue := range issues {
		if issue.Status == models.StatusClosed && issue.ResolvedAt != nil {
			hours = append(hours, issue.ResolvedAt.Sub(issue.CreatedAt).Hours())
		}
	}

	if len(hours) == 0 {
		return ResolutionStats{}
	}

	mean, _ := stats.Mean(hours)
	median, _ := stats.Median(hours)

	return ResolutionStats{
		Resolved:    len(hours),
		MeanHours:   mean,
		MedianHours: median,
	}
}
