// Package employee provides the Employee catalog. Employee codes follow the
// company's numbering mode, so two branches can each have an EMP-NNN-000001.
package employee

import (
	"context"
	"time"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain"
)

// Employee represents a staff member attached to a branch.
type Employee struct {
	entity.Catalog

	// BranchID is the branch the employee works at
	BranchID id.ID `db:"branch_id" json:"branchId"`

	// Designation is the job title
	Designation *string `db:"designation" json:"designation,omitempty"`

	Phone *string `db:"phone" json:"phone,omitempty"`
	Email *string `db:"email" json:"email,omitempty"`

	// Salary is the monthly salary
	Salary types.Amount `db:"salary" json:"salary"`

	// JoinedAt is the hire date
	JoinedAt *time.Time `db:"joined_at" json:"joinedAt,omitempty"`
}

// NewEmployee creates a new Employee.
func NewEmployee(name string, branchID id.ID) *Employee {
	return &Employee{
		Catalog:  entity.NewCatalog("", name),
		BranchID: branchID,
	}
}

// Validate implements entity.Validatable.
func (e *Employee) Validate(ctx context.Context) error {
	if err := e.Catalog.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(e.BranchID) {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branchId")
	}
	if e.Salary.IsNegative() {
		return apperror.NewValidation("salary cannot be negative").
			WithDetail("field", "salary")
	}
	return nil
}

// Repository defines the interface for Employee persistence.
type Repository interface {
	domain.CatalogRepository[*Employee]
}

// Service provides business logic for the Employee catalog.
type Service struct {
	*domain.CatalogService[*Employee]
}

// NewService creates a new Employee service. Scopes must be the shared
// company resolver so employee codes honor the numbering mode.
func NewService(repo Repository, generator sequence.Generator, scopes domain.ScopeResolver) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Employee]{
			Repo:       repo,
			Generator:  generator,
			Scopes:     scopes,
			EntityName: "employee",
			CodePrefix: "EMP",
		}),
	}
}
