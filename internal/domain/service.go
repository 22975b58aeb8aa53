package domain

import (
	"context"
	"fmt"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/core/tx"
)

func tenantID(ctx context.Context) (id.ID, error) {
	return tenant.GetTenantID(ctx)
}

// CatalogService provides the uniform CRUD template for catalog entities:
// validate, generate code if empty, stamp tenant/audit fields, persist in a
// transaction, all failures surfaced as AppError.
type CatalogService[T CatalogEntity] struct {
	repo      CatalogRepository[T]
	generator sequence.Generator
	scopes    ScopeResolver
	hooks     *HookRegistry[T]

	// entityName for error messages; codePrefix for generated codes
	entityName string
	codePrefix string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T CatalogEntity] struct {
	Repo       CatalogRepository[T]
	Generator  sequence.Generator
	Scopes     ScopeResolver
	EntityName string
	CodePrefix string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T CatalogEntity](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	scopes := cfg.Scopes
	if scopes == nil {
		scopes = GlobalScopeResolver{}
	}
	return &CatalogService[T]{
		repo:       cfg.Repo,
		generator:  cfg.Generator,
		scopes:     scopes,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
		codePrefix: cfg.CodePrefix,
	}
}

// Hooks returns the hook registry for entity-specific behavior.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) getTxManager(ctx context.Context) (tx.Manager, error) {
	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm, nil
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

// assignCode generates the next business code when none was submitted, and
// checks uniqueness either way.
func (s *CatalogService[T]) assignCode(ctx context.Context, e T) error {
	if e.GetCode() == "" {
		if s.generator == nil || s.codePrefix == "" {
			return nil
		}
		scope, err := s.scopes.CurrentScope(ctx)
		if err != nil {
			return apperror.NewInternal(err).WithDetail("entity", s.entityName)
		}
		code, err := s.generator.NextCode(ctx, s.entityName, s.codePrefix, scope)
		if err != nil {
			return fmt.Errorf("generate %s code: %w", s.entityName, err)
		}
		e.SetCode(code)
		return nil
	}

	exists, err := s.repo.ExistsByCode(ctx, e.GetCode(), e.GetID())
	if err != nil {
		return fmt.Errorf("check %s code: %w", s.entityName, err)
	}
	if exists {
		return apperror.NewDuplicate(s.entityName, "code", e.GetCode())
	}
	return nil
}

// Create validates, numbers, stamps and persists a new catalog entity.
func (s *CatalogService[T]) Create(ctx context.Context, e T) error {
	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, e); err != nil {
		return err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return err
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.assignCode(ctx, e); err != nil {
			return err
		}
		e.StampCreate(ctx)
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return s.hooks.Run(ctx, AfterCreate, e)
	})
}

// GetByID retrieves an entity by id.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return e, s.normalizeGetErr(err, entityID.String())
	}
	return e, nil
}

// GetByCode retrieves an entity by business code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	e, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return e, s.normalizeGetErr(err, code)
	}
	return e, nil
}

// Update validates and persists changes to an existing entity.
// Uniqueness checks exclude the entity itself.
func (s *CatalogService[T]) Update(ctx context.Context, e T) error {
	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, e); err != nil {
		return err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return err
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if e.GetCode() != "" {
			exists, err := s.repo.ExistsByCode(ctx, e.GetCode(), e.GetID())
			if err != nil {
				return fmt.Errorf("check %s code: %w", s.entityName, err)
			}
			if exists {
				return apperror.NewDuplicate(s.entityName, "code", e.GetCode())
			}
		}
		e.StampUpdate(ctx)
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return s.hooks.Run(ctx, AfterUpdate, e)
	})
}

// Delete removes an entity. Before-delete hooks run first, so entity
// services can gate deletion on dependent rows.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return err
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeDelete, e); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return s.hooks.Run(ctx, AfterDelete, e)
	})
}

// List retrieves one page of entities.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks entity existence.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}

// Lookup returns id+label pairs for UI selects.
func (s *CatalogService[T]) Lookup(ctx context.Context, filter ListFilter) ([]LookupItem, error) {
	return s.repo.Lookup(ctx, filter)
}
