package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// PayrollRepository exposes read access to payroll entries.
type PayrollRepository interface {
	LatestForStaff(ctx context.Context, organizationID, staffID string) (*domain.Payroll, error)
	ForStaffPeriod(ctx context.Context, organizationID, staffID, payPeriod string) (*domain.Payroll, error)
	HighestNet(ctx context.Context, organizationID string) (*domain.Payroll, error)
	LowestNet(ctx context.Context, organizationID string) (*domain.Payroll, error)
	SumStructureField(ctx context.Context, organizationID, field string) (float64, error)
	ListForPeriod(ctx context.Context, organizationID, payPeriod string) ([]domain.Payroll, error)
}

type payrollRepository struct {
	pool *pgxpool.Pool
}

// NewPayrollRepository instantiates the repository.
func NewPayrollRepository(pool *pgxpool.Pool) PayrollRepository {
	return &payrollRepository{pool: pool}
}

const payrollColumns = `
        p.id, p.staff_id, u.full_name, p.organization_id, p.pay_period,
        p.basic, p.housing, p.utility, p.transport, p.bonus,
        p.reimbursements, p.deductions, p.taxes, p.net_salary`

// structureColumns whitelists the SQL column behind each addressable salary
// structure field. Aggregation queries refuse anything outside this map.
var structureColumns = map[string]string{
	"basic":          "basic",
	"housing":        "housing",
	"utility":        "utility",
	"transport":      "transport",
	"bonus":          "bonus",
	"reimbursements": "reimbursements",
	"deductions":     "deductions",
	"taxes":          "taxes",
}

func scanPayroll(row pgx.Row, p *domain.Payroll) error {
	return row.Scan(
		&p.ID,
		&p.StaffID,
		&p.StaffFullName,
		&p.OrganizationID,
		&p.PayPeriod,
		&p.Structure.Basic,
		&p.Structure.Housing,
		&p.Structure.Utility,
		&p.Structure.Transport,
		&p.Structure.Bonus,
		&p.Structure.Reimbursements,
		&p.Structure.Deductions,
		&p.Structure.Taxes,
		&p.NetSalary,
	)
}

func (r *payrollRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Payroll, error) {
	var p domain.Payroll
	if err := scanPayroll(r.pool.QueryRow(ctx, query, args...), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepository) LatestForStaff(ctx context.Context, organizationID, staffID string) (*domain.Payroll, error) {
	query := `SELECT` + payrollColumns + `
        FROM payrolls p JOIN users u ON u.id = p.staff_id
        WHERE p.organization_id=$1 AND p.staff_id=$2
        ORDER BY p.pay_period DESC LIMIT 1`
	return r.queryOne(ctx, query, organizationID, staffID)
}

func (r *payrollRepository) ForStaffPeriod(ctx context.Context, organizationID, staffID, payPeriod string) (*domain.Payroll, error) {
	query := `SELECT` + payrollColumns + `
        FROM payrolls p JOIN users u ON u.id = p.staff_id
        WHERE p.organization_id=$1 AND p.staff_id=$2 AND p.pay_period=$3`
	return r.queryOne(ctx, query, organizationID, staffID, payPeriod)
}

func (r *payrollRepository) HighestNet(ctx context.Context, organizationID string) (*domain.Payroll, error) {
	query := `SELECT` + payrollColumns + `
        FROM payrolls p JOIN users u ON u.id = p.staff_id
        WHERE p.organization_id=$1
        ORDER BY p.net_salary DESC LIMIT 1`
	return r.queryOne(ctx, query, organizationID)
}

func (r *payrollRepository) LowestNet(ctx context.Context, organizationID string) (*domain.Payroll, error) {
	query := `SELECT` + payrollColumns + `
        FROM payrolls p JOIN users u ON u.id = p.staff_id
        WHERE p.organization_id=$1
        ORDER BY p.net_salary ASC LIMIT 1`
	return r.queryOne(ctx, query, organizationID)
}

func (r *payrollRepository) SumStructureField(ctx context.Context, organizationID, field string) (float64, error) {
	column, ok := structureColumns[field]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	query := `SELECT COALESCE(SUM(` + column + `), 0) FROM payrolls WHERE organization_id=$1`

	var sum float64
	if err := r.pool.QueryRow(ctx, query, organizationID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *payrollRepository) ListForPeriod(ctx context.Context, organizationID, payPeriod string) ([]domain.Payroll, error) {
	query := `SELECT` + payrollColumns + `
        FROM payrolls p JOIN users u ON u.id = p.staff_id
        WHERE p.organization_id=$1 AND p.pay_period=$2
        ORDER BY u.full_name`

	rows, err := r.pool.Query(ctx, query, organizationID, payPeriod)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payroll
	for rows.Next() {
		var p domain.Payroll
		if err := scanPayroll(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
