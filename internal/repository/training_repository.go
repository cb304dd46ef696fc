package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// TrainingRepository exposes access to training requests.
type TrainingRepository interface {
	List(ctx context.Context, filter TrainingFilter) ([]domain.TrainingRequest, error)
	AggregateApprovedCosts(ctx context.Context, organizationID string) (domain.TrainingCosts, int, error)
}

// TrainingFilter defines query params for training listings.
type TrainingFilter struct {
	StaffID        string
	OrganizationID string
	Statuses       []string
	RequestedFrom  *time.Time
	SortAscending  bool
	Limit          int
}

type trainingRepository struct {
	pool *pgxpool.Pool
}

// NewTrainingRepository instantiates the repository.
func NewTrainingRepository(pool *pgxpool.Pool) TrainingRepository {
	return &trainingRepository{pool: pool}
}

func (r *trainingRepository) List(ctx context.Context, filter TrainingFilter) ([]domain.TrainingRequest, error) {
	query := `
        SELECT id, staff_id, organization_id, training_title, requested_date, status,
               registration_fee, travel_cost, accommodation_cost, meal_cost, other_cost
        FROM training_requests`
	args := []any{}
	clauses := []string{}

	if filter.StaffID != "" {
		args = append(args, filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("staff_id=$%d", len(args)))
	}
	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		clauses = append(clauses, fmt.Sprintf("organization_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.RequestedFrom != nil {
		args = append(args, *filter.RequestedFrom)
		clauses = append(clauses, fmt.Sprintf("requested_date >= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	if filter.SortAscending {
		query += " ORDER BY requested_date ASC"
	} else {
		query += " ORDER BY requested_date DESC"
	}
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TrainingRequest
	for rows.Next() {
		var t domain.TrainingRequest
		if err := rows.Scan(
			&t.ID,
			&t.StaffID,
			&t.OrganizationID,
			&t.TrainingTitle,
			&t.RequestedDate,
			&t.Status,
			&t.Costs.RegistrationFee,
			&t.Costs.TravelCost,
			&t.Costs.AccommodationCost,
			&t.Costs.MealCost,
			&t.Costs.OtherCost,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// AggregateApprovedCosts sums the cost breakdown across all approved
// training in the organization. The count distinguishes "no approved rows"
// from a genuine zero total.
func (r *trainingRepository) AggregateApprovedCosts(ctx context.Context, organizationID string) (domain.TrainingCosts, int, error) {
	const query = `
        SELECT COUNT(*),
               COALESCE(SUM(registration_fee), 0),
               COALESCE(SUM(travel_cost), 0),
               COALESCE(SUM(accommodation_cost), 0),
               COALESCE(SUM(meal_cost), 0),
               COALESCE(SUM(other_cost), 0)
        FROM training_requests
        WHERE organization_id=$1 AND status=$2`

	var costs domain.TrainingCosts
	var count int
	err := r.pool.QueryRow(ctx, query, organizationID, domain.TrainingStatusApproved).Scan(
		&count,
		&costs.RegistrationFee,
		&costs.TravelCost,
		&costs.AccommodationCost,
		&costs.MealCost,
		&costs.OtherCost,
	)
	if err != nil && err != pgx.ErrNoRows {
		return domain.TrainingCosts{}, 0, err
	}
	return costs, count, nil
}
