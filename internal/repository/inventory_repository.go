package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// InventoryNameTotal pairs an item name with its summed quantity.
type InventoryNameTotal struct {
	Name     string
	Quantity int
}

// InventoryRepository exposes read access to inventory items and requests.
type InventoryRepository interface {
	ListAssignedTo(ctx context.Context, organizationID, userID string) ([]domain.InventoryItem, error)
	SearchByName(ctx context.Context, organizationID, name string) ([]domain.InventoryItem, error)
	SummaryByName(ctx context.Context, organizationID string) ([]InventoryNameTotal, error)
	ListPendingRequests(ctx context.Context, organizationID string, limit int) ([]domain.InventoryRequest, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository instantiates the repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

const inventoryColumns = `id, organization_id, name, item_code, serial_number, quantity, assigned_to`

func collectItems(rows pgx.Rows) ([]domain.InventoryItem, error) {
	var result []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(
			&item.ID,
			&item.OrganizationID,
			&item.Name,
			&item.ItemCode,
			&item.SerialNumber,
			&item.Quantity,
			&item.AssignedTo,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *inventoryRepository) ListAssignedTo(ctx context.Context, organizationID, userID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items
        WHERE organization_id=$1 AND assigned_to=$2
        ORDER BY name`

	rows, err := r.pool.Query(ctx, query, organizationID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// SearchByName matches item names the same way staff names are matched:
// case-insensitive with whitespace runs widened to wildcards.
func (r *inventoryRepository) SearchByName(ctx context.Context, organizationID, name string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items
        WHERE organization_id=$1 AND name ILIKE $2 ESCAPE '\'
        ORDER BY name`

	rows, err := r.pool.Query(ctx, query, organizationID, namePattern(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *inventoryRepository) SummaryByName(ctx context.Context, organizationID string) ([]InventoryNameTotal, error) {
	const query = `
        SELECT name, COALESCE(SUM(quantity), 0)
        FROM inventory_items
        WHERE organization_id=$1
        GROUP BY name
        ORDER BY name`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []InventoryNameTotal
	for rows.Next() {
		var total InventoryNameTotal
		if err := rows.Scan(&total.Name, &total.Quantity); err != nil {
			return nil, err
		}
		result = append(result, total)
	}
	return result, rows.Err()
}

func (r *inventoryRepository) ListPendingRequests(ctx context.Context, organizationID string, limit int) ([]domain.InventoryRequest, error) {
	query := `
        SELECT ir.id, ir.organization_id, ir.staff_id, u.full_name, ir.item_name, ir.quantity, ir.status, ir.created_at
        FROM inventory_requests ir
        JOIN users u ON u.id = ir.staff_id
        WHERE ir.organization_id=$1 AND ir.status=$2
        ORDER BY ir.created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.pool.Query(ctx, query, organizationID, domain.InventoryRequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InventoryRequest
	for rows.Next() {
		var req domain.InventoryRequest
		if err := rows.Scan(
			&req.ID,
			&req.OrganizationID,
			&req.StaffID,
			&req.StaffFullName,
			&req.ItemName,
			&req.Quantity,
			&req.Status,
			&req.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}
