package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report shapes returned by the analytics service. Field names are part of
// the external contract: dashboards and the chatbot context builder format
// them directly.

// StatusCount pairs a ticket status with how many tickets are in it.
type StatusCount struct {
	Status TicketStatus
	Count  int64
}

// PriorityCount pairs a priority level with a ticket count.
type PriorityCount struct {
	Priority TicketPriority
	Count    int64
}

// NamedCount pairs a display name (category or agent) with a ticket count.
type NamedCount struct {
	Name  string
	Count int64
}

// ResponseTimeBucket is one bar of the response-time histogram. Labels are
// minute ranges: "0-15", "15-30", "30-60", "60-120", "120-240", "240+".
type ResponseTimeBucket struct {
	Label string
	Count int64
}

// AgentResolutionTime reports an agent's average resolution time in minutes.
type AgentResolutionTime struct {
	AgentID              uuid.UUID
	AgentName            string
	AvgResolutionMinutes int64
}

// MonthCount is one point of a monthly histogram keyed "YYYY-MM".
type MonthCount struct {
	Month string
	Count int64
}

// RoleCount pairs a user role with how many users hold it.
type RoleCount struct {
	Role  UserRole
	Count int64
}

// CategoryTicketCount ranks a category by how many tickets reference it.
type CategoryTicketCount struct {
	CategoryID  int64
	Name        string
	TicketCount int64
}

// TicketAnalytics is the global ticket report.
type TicketAnalytics struct {
	TotalTickets    int64
	ByStatus        []StatusCount
	ByPriority      []PriorityCount
	AvgResponseTime int64
	ByCategory      []NamedCount
	ByAgent         []NamedCount
}

// UserAnalytics is the global user report.
type UserAnalytics struct {
	TotalUsers      int64
	ByRole          []RoleCount
	ActiveUsers     int64
	MonthlyActivity []MonthCount
	RecentlyUpdated []*User
}

// CategoryAnalytics is the global category report.
type CategoryAnalytics struct {
	TotalCategories int64
	ByTicketCount   []CategoryTicketCount
	RecentlyUpdated []*Category
}

// PerformanceAnalytics is the distribution-centric performance report.
type PerformanceAnalytics struct {
	ResponseTimeDistribution []ResponseTimeBucket
	ResolutionTimeByAgent    []AgentResolutionTime
}

// RealTimeSnapshot is the live dashboard tile set.
type RealTimeSnapshot struct {
	ActiveSessions  int64
	NewTickets      int64
	ResolvedTickets int64
	ActiveAgents    int64
}

// RangeReport aggregates tickets created within an inclusive date range.
type RangeReport struct {
	Start             time.Time
	End               time.Time
	TotalTickets      int64
	ResolvedTickets   int64
	AvgResponseTime   int64
	AvgResolutionTime int64
}

// UserScopedReport aggregates tickets where the user is creator or assignee.
type UserScopedReport struct {
	UserID               uuid.UUID
	TotalTickets         int64
	ResolvedToday        int64
	AvgResponseTime      int64
	PerformanceScore     int64
	PriorityDistribution []PriorityBucket
}

// AgentPerformanceEntry is one row of the per-agent performance table.
type AgentPerformanceEntry struct {
	AgentID           uuid.UUID
	AgentName         string
	TotalTickets      int64
	ResolvedTickets   int64
	AvgResponseTime   int64
	AvgResolutionTime int64
}
