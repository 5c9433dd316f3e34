package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/solvexa/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

// AnalyticsHandler handles HTTP requests for analytics reports
type AnalyticsHandler struct {
	analyticsService ports.AnalyticsService
	errorHandler     *ErrorHandler
	logger           *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService ports.AnalyticsService, errorHandler *ErrorHandler, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		errorHandler:     errorHandler,
		logger:           logger.With("handler", "analytics"),
	}
}

// Router sets up a new chi Router for all analytics routes.
func (h *AnalyticsHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all analytics endpoints.
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tickets", h.HandleTicketAnalytics)
	r.Get("/users", h.HandleUserAnalytics)
	r.Get("/users/{userID}", h.HandleUserScopedAnalytics)
	r.Get("/categories", h.HandleCategoryAnalytics)
	r.Get("/performance", h.HandlePerformanceAnalytics)
	r.Get("/realtime", h.HandleRealTimeSnapshot)
	r.Get("/range", h.HandleDateRangeAnalytics)
	r.Get("/agents", h.HandleAgentPerformance)
}

// --- Response DTOs ---

// CountDTO is a generic label/count pair used by the breakdown lists.
type CountDTO struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// TicketAnalyticsDTO defines the JSON response for the global ticket report.
type TicketAnalyticsDTO struct {
	TotalTickets    int64      `json:"totalTickets"`
	ByStatus        []CountDTO `json:"byStatus"`
	ByPriority      []CountDTO `json:"byPriority"`
	AvgResponseTime int64      `json:"avgResponseTime"`
	ByCategory      []CountDTO `json:"byCategory"`
	ByAgent         []CountDTO `json:"byAgent"`
}

// UserSummaryDTO is the trimmed user shape exposed in reports.
type UserSummaryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// UserAnalyticsDTO defines the JSON response for the global user report.
type UserAnalyticsDTO struct {
	TotalUsers      int64            `json:"totalUsers"`
	ByRole          []CountDTO       `json:"byRole"`
	ActiveUsers     int64            `json:"activeUsers"`
	MonthlyActivity []CountDTO       `json:"monthlyActivity"`
	RecentlyUpdated []UserSummaryDTO `json:"recentlyUpdated"`
}

// CategoryDTO defines the JSON shape for a category.
type CategoryDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LastUpdated string `json:"lastUpdated"`
}

// CategoryRankDTO is one row of the categories-by-ticket-count ranking.
type CategoryRankDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TicketCount int64  `json:"ticketCount"`
}

// CategoryAnalyticsDTO defines the JSON response for the category report.
type CategoryAnalyticsDTO struct {
	TotalCategories int64             `json:"totalCategories"`
	ByTicketCount   []CategoryRankDTO `json:"byTicketCount"`
	RecentlyUpdated []CategoryDTO     `json:"recentlyUpdated"`
}

// AgentResolutionDTO is one row of the per-agent resolution time table.
type AgentResolutionDTO struct {
	AgentID              string `json:"agentId"`
	AgentName            string `json:"agentName"`
	AvgResolutionMinutes int64  `json:"avgResolutionMinutes"`
}

// PerformanceAnalyticsDTO defines the JSON response for the performance report.
type PerformanceAnalyticsDTO struct {
	ResponseTimeDistribution []CountDTO           `json:"responseTimeDistribution"`
	ResolutionTimeByAgent    []AgentResolutionDTO `json:"resolutionTimeByAgent"`
}

// RealTimeSnapshotDTO defines the JSON response for the live dashboard tiles.
type RealTimeSnapshotDTO struct {
	ActiveSessions  int64 `json:"activeSessions"`
	NewTickets      int64 `json:"newTickets"`
	ResolvedTickets int64 `json:"resolvedTickets"`
	ActiveAgents    int64 `json:"activeAgents"`
}

// RangeReportDTO defines the JSON response for date-range analytics.
type RangeReportDTO struct {
	Start             string `json:"start"`
	End               string `json:"end"`
	TotalTickets      int64  `json:"totalTickets"`
	ResolvedTickets   int64  `json:"resolvedTickets"`
	AvgResponseTime   int64  `json:"avgResponseTime"`
	AvgResolutionTime int64  `json:"avgResolutionTime"`
}

// PriorityBucketDTO is one entry of a priority distribution.
type PriorityBucketDTO struct {
	Priority   string `json:"priority"`
	Count      int64  `json:"count"`
	Percentage int64  `json:"percentage"`
}

// UserScopedReportDTO defines the JSON response for per-user analytics.
type UserScopedReportDTO struct {
	UserID               string              `json:"userId"`
	TotalTickets         int64               `json:"totalTickets"`
	ResolvedToday        int64               `json:"resolvedToday"`
	AvgResponseTime      int64               `json:"avgResponseTime"`
	PerformanceScore     int64               `json:"performanceScore"`
	PriorityDistribution []PriorityBucketDTO `json:"priorityDistribution"`
}

// AgentPerformanceDTO is one row of the agent performance table.
type AgentPerformanceDTO struct {
	AgentID           string `json:"agentId"`
	AgentName         string `json:"agentName"`
	TotalTickets      int64  `json:"totalTickets"`
	ResolvedTickets   int64  `json:"resolvedTickets"`
	AvgResponseTime   int64  `json:"avgResponseTime"`
	AvgResolutionTime int64  `json:"avgResolutionTime"`
}

func toTicketAnalyticsDTO(report *domain.TicketAnalytics) TicketAnalyticsDTO {
	byStatus := make([]CountDTO, 0, len(report.ByStatus))
	for _, c := range report.ByStatus {
		byStatus = append(byStatus, CountDTO{Label: string(c.Status), Count: c.Count})
	}

	byPriority := make([]CountDTO, 0, len(report.ByPriority))
	for _, c := range report.ByPriority {
		byPriority = append(byPriority, CountDTO{Label: string(c.Priority), Count: c.Count})
	}

	return TicketAnalyticsDTO{
		TotalTickets:    report.TotalTickets,
		ByStatus:        byStatus,
		ByPriority:      byPriority,
		AvgResponseTime: report.AvgResponseTime,
		ByCategory:      toCountDTOs(report.ByCategory),
		ByAgent:         toCountDTOs(report.ByAgent),
	}
}

func toCountDTOs(counts []domain.NamedCount) []CountDTO {
	result := make([]CountDTO, 0, len(counts))
	for _, c := range counts {
		result = append(result, CountDTO{Label: c.Name, Count: c.Count})
	}
	return result
}

func toUserSummaryDTO(user *domain.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserAnalyticsDTO(report *domain.UserAnalytics) UserAnalyticsDTO {
	byRole := make([]CountDTO, 0, len(report.ByRole))
	for _, c := range report.ByRole {
		byRole = append(byRole, CountDTO{Label: string(c.Role), Count: c.Count})
	}

	monthly := make([]CountDTO, 0, len(report.MonthlyActivity))
	for _, c := range report.MonthlyActivity {
		monthly = append(monthly, CountDTO{Label: c.Month, Count: c.Count})
	}

	recent := make([]UserSummaryDTO, 0, len(report.RecentlyUpdated))
	for _, user := range report.RecentlyUpdated {
		recent = append(recent, toUserSummaryDTO(user))
	}

	return UserAnalyticsDTO{
		TotalUsers:      report.TotalUsers,
		ByRole:          byRole,
		ActiveUsers:     report.ActiveUsers,
		MonthlyActivity: monthly,
		RecentlyUpdated: recent,
	}
}

func toCategoryAnalyticsDTO(report *domain.CategoryAnalytics) CategoryAnalyticsDTO {
	ranked := make([]CategoryRankDTO, 0, len(report.ByTicketCount))
	for _, c := range report.ByTicketCount {
		ranked = append(ranked, CategoryRankDTO{
			ID:          c.CategoryID,
			Name:        c.Name,
			TicketCount: c.TicketCount,
		})
	}

	recent := make([]CategoryDTO, 0, len(report.RecentlyUpdated))
	for _, category := range report.RecentlyUpdated {
		recent = append(recent, CategoryDTO{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			LastUpdated: category.LastUpdated.Format(time.RFC3339),
		})
	}

	return CategoryAnalyticsDTO{
		TotalCategories: report.TotalCategories,
		ByTicketCount:   ranked,
		RecentlyUpdated: recent,
	}
}

func toPerformanceAnalyticsDTO(report *domain.PerformanceAnalytics) PerformanceAnalyticsDTO {
	distribution := make([]CountDTO, 0, len(report.ResponseTimeDistribution))
	for _, b := range report.ResponseTimeDistribution {
		distribution = append(distribution, CountDTO{Label: b.Label, Count: b.Count})
	}

	byAgent := make([]AgentResolutionDTO, 0, len(report.ResolutionTimeByAgent))
	for _, a := range report.ResolutionTimeByAgent {
		byAgent = append(byAgent, AgentResolutionDTO{
			AgentID:              a.AgentID.String(),
			AgentName:            a.AgentName,
			AvgResolutionMinutes: a.AvgResolutionMinutes,
		})
	}

	return PerformanceAnalyticsDTO{
		ResponseTimeDistribution: distribution,
		ResolutionTimeByAgent:    byAgent,
	}
}

func toUserScopedReportDTO(report *domain.UserScopedReport) UserScopedReportDTO {
	distribution := make([]PriorityBucketDTO, 0, len(report.PriorityDistribution))
	for _, b := range report.PriorityDistribution {
		distribution = append(distribution, PriorityBucketDTO{
			Priority:   string(b.Priority),
			Count:      b.Count,
			Percentage: b.Percentage,
		})
	}

	return UserScopedReportDTO{
		UserID:               report.UserID.String(),
		TotalTickets:         report.TotalTickets,
		ResolvedToday:        report.ResolvedToday,
		AvgResponseTime:      report.AvgResponseTime,
		PerformanceScore:     report.PerformanceScore,
		PriorityDistribution: distribution,
	}
}

// --- Handlers ---

// HandleTicketAnalytics handles GET /analytics/tickets
func (h *AnalyticsHandler) HandleTicketAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.TicketAnalytics(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, toTicketAnalyticsDTO(report))
}

// HandleUserAnalytics handles GET /analytics/users
func (h *AnalyticsHandler) HandleUserAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.UserAnalytics(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, toUserAnalyticsDTO(report))
}

// HandleUserScopedAnalytics handles GET /analytics/users/{userID}
func (h *AnalyticsHandler) HandleUserScopedAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Invalid user ID"))
		return
	}

	report, err := h.analyticsService.AnalyticsByUser(r.Context(), userID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, toUserScopedReportDTO(report))
}

// HandleCategoryAnalytics handles GET /analytics/categories
func (h *AnalyticsHandler) HandleCategoryAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.CategoryAnalytics(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, toCategoryAnalyticsDTO(report))
}

// HandlePerformanceAnalytics handles GET /analytics/performance
func (h *AnalyticsHandler) HandlePerformanceAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.PerformanceAnalytics(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, toPerformanceAnalyticsDTO(report))
}

// HandleRealTimeSnapshot handles GET /analytics/realtime
func (h *AnalyticsHandler) HandleRealTimeSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.analyticsService.RealTimeSnapshot(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, RealTimeSnapshotDTO{
		ActiveSessions:  snapshot.ActiveSessions,
		NewTickets:      snapshot.NewTickets,
		ResolvedTickets: snapshot.ResolvedTickets,
		ActiveAgents:    snapshot.ActiveAgents,
	})
}

// HandleDateRangeAnalytics handles GET /analytics/range?start=...&end=...
func (h *AnalyticsHandler) HandleDateRangeAnalytics(w http.ResponseWriter, r *http.Request) {
	start, err := validation.ParseDateQueryParam(r, "start")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	end, err := validation.ParseDateQueryParam(r, "end")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	report, err := h.analyticsService.AnalyticsByDateRange(r.Context(), start, end)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteSuccess(w, RangeReportDTO{
		Start:             report.Start.Format(time.RFC3339),
		End:               report.End.Format(time.RFC3339),
		TotalTickets:      report.TotalTickets,
		ResolvedTickets:   report.ResolvedTickets,
		AvgResponseTime:   report.AvgResponseTime,
		AvgResolutionTime: report.AvgResolutionTime,
	})
}

// HandleAgentPerformance handles GET /analytics/agents
func (h *AnalyticsHandler) HandleAgentPerformance(w http.ResponseWriter, r *http.Request) {
	entries, err := h.analyticsService.AgentPerformance(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]AgentPerformanceDTO, 0, len(entries))
	for _, entry := range entries {
		response = append(response, AgentPerformanceDTO{
			AgentID:           entry.AgentID.String(),
			AgentName:         entry.AgentName,
			TotalTickets:      entry.TotalTickets,
			ResolvedTickets:   entry.ResolvedTickets,
			AvgResponseTime:   entry.AvgResponseTime,
			AvgResolutionTime: entry.AvgResolutionTime,
		})
	}

	WriteList(w, response)
}
