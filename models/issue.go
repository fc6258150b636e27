package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssuePriority enum
type IssuePriority string

const (
	PriorityCritical IssuePriority = "Critical"
	PriorityHigh     IssuePriority = "High"
	PriorityMedium   IssuePriority = "Medium"
	PriorityLow      IssuePriority = "Low"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusOpen       IssueStatus = "OPEN"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusClosed     IssueStatus = "CLOSED"
)

// Issue represents a reported civic problem.
// AfterImage stays nil until the issue is CLOSED; Ward is computed once at
// creation from the reported coordinates and never recomputed.
type Issue struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueType    string             `bson:"issueType" json:"issueType"`
	Priority     IssuePriority      `bson:"priority" json:"priority"`
	Status       IssueStatus        `bson:"status" json:"status"`
	Ward         int                `bson:"ward" json:"ward"`
	BeforeImage  string             `bson:"beforeImage" json:"beforeImage"`
	AfterImage   *string            `bson:"afterImage,omitempty" json:"afterImage,omitempty"`
	Latitude     float64            `bson:"latitude" json:"latitude"`
	Longitude    float64            `bson:"longitude" json:"longitude"`
	AIConfidence float64            `bson:"aiConfidence" json:"aiConfidence"`
	AIReasoning  string             `bson:"aiReasoning" json:"aiReasoning"`
	ReportedBy   primitive.ObjectID `bson:"reportedBy" json:"reportedBy"`
	ResolvedAt   *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
