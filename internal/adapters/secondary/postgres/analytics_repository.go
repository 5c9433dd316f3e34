package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvexa/helpdesk-backend/internal/core/domain"
	apperrors "github.com/solvexa/helpdesk-backend/internal/core/errors"
	"github.com/solvexa/helpdesk-backend/internal/core/ports"
)

// responseBucketLabels fixes the histogram bar order. The SQL CASE below
// must assign to exactly these labels.
var responseBucketLabels = []string{"0-15", "15-30", "30-60", "60-120", "120-240", "240+"}

// AnalyticsRepository runs the read-only aggregation queries over the
// ticket tables.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

var _ ports.AnalyticsRepository = (*AnalyticsRepository)(nil)

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) ports.AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// CountTickets returns the total number of tickets.
func (r *AnalyticsRepository) CountTickets(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM tickets`)
}

// CountByStatus groups tickets by status. Every status appears in the
// result, zero-valued when no ticket holds it.
func (r *AnalyticsRepository) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	const query = `
SELECT status, COUNT(*)
FROM tickets
GROUP BY status
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	counts := map[domain.TicketStatus]int64{}
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		counts[domain.TicketStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}

	result := make([]domain.StatusCount, 0, len(domain.TicketStatuses))
	for _, status := range domain.TicketStatuses {
		result = append(result, domain.StatusCount{Status: status, Count: counts[status]})
	}
	return result, nil
}

// CountByPriority groups tickets by priority in fixed low-to-urgent order.
func (r *AnalyticsRepository) CountByPriority(ctx context.Context) ([]domain.PriorityCount, error) {
	const query = `
SELECT priority, COUNT(*)
FROM tickets
GROUP BY priority
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	counts := map[domain.TicketPriority]int64{}
	for rows.Next() {
		var (
			priority string
			count    int64
		)
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		counts[domain.TicketPriority(priority)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}

	result := make([]domain.PriorityCount, 0, len(domain.TicketPriorities))
	for _, priority := range domain.TicketPriorities {
		result = append(result, domain.PriorityCount{Priority: priority, Count: counts[priority]})
	}
	return result, nil
}

// CountByCategory counts tickets per category name, most loaded first.
func (r *AnalyticsRepository) CountByCategory(ctx context.Context) ([]domain.NamedCount, error) {
	const query = `
SELECT c.name, COUNT(t.id)
FROM tickets t
JOIN categories c ON t.category_id = c.id
GROUP BY c.name
ORDER BY COUNT(t.id) DESC, c.name
`
	return r.namedCountQuery(ctx, query)
}

// CountByAgent counts tickets per assigned agent, most loaded first.
// Unassigned tickets are excluded.
func (r *AnalyticsRepository) CountByAgent(ctx context.Context) ([]domain.NamedCount, error) {
	const query = `
SELECT u.name, COUNT(t.id)
FROM tickets t
JOIN users u ON t.assigned_to = u.id
GROUP BY u.name
ORDER BY COUNT(t.id) DESC, u.name
`
	return r.namedCountQuery(ctx, query)
}

// ResponseTimeBuckets histograms the response time of every ticket that has
// left the open state. Bucket boundaries are in minutes; each bucket is
// half-open, so a 30 minute response lands in "30-60".
func (r *AnalyticsRepository) ResponseTimeBuckets(ctx context.Context) ([]domain.ResponseTimeBucket, error) {
	const query = `
SELECT bucket, COUNT(*)
FROM (
    SELECT CASE
        WHEN minutes < 15 THEN '0-15'
        WHEN minutes < 30 THEN '15-30'
        WHEN minutes < 60 THEN '30-60'
        WHEN minutes < 120 THEN '60-120'
        WHEN minutes < 240 THEN '120-240'
        ELSE '240+'
    END AS bucket
    FROM (
        SELECT EXTRACT(EPOCH FROM (last_updated - created_at)) / 60 AS minutes
        FROM tickets
        WHERE status <> 'open'
    ) response_times
) buckets
GROUP BY bucket
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			label string
			count int64
		)
		if err := rows.Scan(&label, &count); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		counts[label] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}

	result := make([]domain.ResponseTimeBucket, 0, len(responseBucketLabels))
	for _, label := range responseBucketLabels {
		result = append(result, domain.ResponseTimeBucket{Label: label, Count: counts[label]})
	}
	return result, nil
}

// ResolutionTimeByAgent averages resolution time per agent over the tickets
// they resolved. Agents without resolved tickets are excluded.
func (r *AnalyticsRepository) ResolutionTimeByAgent(ctx context.Context) ([]domain.AgentResolutionTime, error) {
	const query = `
SELECT u.id, u.name, ROUND(AVG(EXTRACT(EPOCH FROM (t.resolved_at - t.created_at)) / 60))::bigint
FROM tickets t
JOIN users u ON t.assigned_to = u.id
WHERE t.status = 'resolved' AND t.resolved_at IS NOT NULL
GROUP BY u.id, u.name
ORDER BY u.name
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	result := []domain.AgentResolutionTime{}
	for rows.Next() {
		var (
			agentID pgtype.UUID
			entry   domain.AgentResolutionTime
		)
		if err := rows.Scan(&agentID, &entry.AgentName, &entry.AvgResolutionMinutes); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		entry.AgentID = agentID.Bytes
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return result, nil
}

// TicketsCreatedBetween loads tickets created within the inclusive
// [start, end] window, oldest first.
func (r *AnalyticsRepository) TicketsCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Ticket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM tickets
WHERE created_at >= $1 AND created_at <= $2
ORDER BY created_at
`

	rows, err := r.pool.Query(ctx, query, pgTime(start), pgTime(end))
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return collectTickets(rows)
}

// TicketsForUser loads every ticket the user created or is assigned to.
func (r *AnalyticsRepository) TicketsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM tickets
WHERE created_by = $1 OR assigned_to = $1
ORDER BY created_at
`

	rows, err := r.pool.Query(ctx, query, pgUUID(userID))
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return collectTickets(rows)
}

// TicketsByAssignee loads every ticket assigned to the agent.
func (r *AnalyticsRepository) TicketsByAssignee(ctx context.Context, agentID uuid.UUID) ([]*domain.Ticket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM tickets
WHERE assigned_to = $1
ORDER BY created_at
`

	rows, err := r.pool.Query(ctx, query, pgUUID(agentID))
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return collectTickets(rows)
}

// CountCreatedSince counts tickets created at or after the given instant.
func (r *AnalyticsRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE created_at >= $1`, pgTime(since)).Scan(&count)
	if err != nil {
		return 0, apperrors.WrapStorage(err)
	}
	return count, nil
}

// CountResolvedSince counts tickets resolved at or after the given instant.
func (r *AnalyticsRepository) CountResolvedSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `
SELECT COUNT(*) FROM tickets
WHERE status = 'resolved' AND resolved_at IS NOT NULL AND resolved_at >= $1
`

	var count int64
	if err := r.pool.QueryRow(ctx, query, pgTime(since)).Scan(&count); err != nil {
		return 0, apperrors.WrapStorage(err)
	}
	return count, nil
}

func (r *AnalyticsRepository) countQuery(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.WrapStorage(err)
	}
	return count, nil
}

func (r *AnalyticsRepository) namedCountQuery(ctx context.Context, query string) ([]domain.NamedCount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	result := []domain.NamedCount{}
	for rows.Next() {
		var nc domain.NamedCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		result = append(result, nc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	return result, nil
}
