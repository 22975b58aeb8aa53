package purchase

import (
	"tradebooks/internal/domain"
)

// Repository defines the interface for Purchase persistence.
type Repository interface {
	domain.DocumentRepository[*Purchase]
}
