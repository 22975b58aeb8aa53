package catalog_repo

import (
	"tradebooks/internal/domain/catalogs/employee"
	"tradebooks/internal/infrastructure/storage/postgres"
)

const employeeTable = "cat_employees"

// EmployeeRepo implements employee.Repository.
type EmployeeRepo struct {
	*BaseCatalogRepo[*employee.Employee]
}

// NewEmployeeRepo creates a new employee repository.
func NewEmployeeRepo() *EmployeeRepo {
	return &EmployeeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			employeeTable,
			postgres.ExtractDBColumns[employee.Employee](),
			[]string{"name", "code", "phone"},
			func() *employee.Employee { return &employee.Employee{} },
		),
	}
}

var _ employee.Repository = (*EmployeeRepo)(nil)
