package domain

import (
	"context"
	"fmt"
	"time"

	"tradebooks/internal/core/apperror"
	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
	"tradebooks/internal/core/sequence"
	"tradebooks/internal/core/tenant"
	"tradebooks/internal/core/types"
	"tradebooks/internal/domain/registers/stock"
	"tradebooks/pkg/logger"
)

// DocumentEntity is the contract document models satisfy so the generic
// service can number, stamp and post them.
type DocumentEntity interface {
	entity.Validatable

	GetID() id.ID
	GetNumber() string
	SetNumber(number string)
	GetDate() time.Time
	GetBranchID() id.ID
	StampCreate(ctx context.Context)
	StampUpdate(ctx context.Context)
}

// DocumentRepository defines CRUD for a document type. Create and Update
// persist the header together with its detail lines; GetByID loads lines.
type DocumentRepository[T DocumentEntity] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, docID id.ID) (T, error)
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
}

// ConversionSource resolves a unit's factor to base units. Document services
// use it to convert line quantities before posting to the stock register.
type ConversionSource interface {
	FactorToBase(ctx context.Context, unitID id.ID) (types.Quantity, error)
}

// NumberKind selects the numbering style of a document type.
type NumberKind int

const (
	// NumberCode produces PREFIX[-BBB]-NNNNNN codes.
	NumberCode NumberKind = iota

	// NumberInvoice produces YYMM-prefixed monthly invoice numbers.
	NumberInvoice
)

// PostingsFunc derives the stock register effect of a document.
// Nil for document types with no stock effect.
type PostingsFunc[T DocumentEntity] func(ctx context.Context, doc T) ([]stock.Posting, error)

// DocumentServiceConfig configures the generic document service.
type DocumentServiceConfig[T DocumentEntity] struct {
	Repo      DocumentRepository[T]
	Generator sequence.Generator
	Scopes    ScopeResolver
	Stock     *stock.Service

	EntityName string
	DocType    string
	Prefix     string
	Kind       NumberKind

	// Postings derives stock postings; nil means no stock effect
	Postings PostingsFunc[T]
}

// DocumentService provides the uniform document template: validate, number,
// stamp, persist header+lines and adjust the stock register, all inside one
// transaction.
type DocumentService[T DocumentEntity] struct {
	repo      DocumentRepository[T]
	generator sequence.Generator
	scopes    ScopeResolver
	stock     *stock.Service
	hooks     *HookRegistry[T]

	entityName string
	docType    string
	prefix     string
	kind       NumberKind
	postings   PostingsFunc[T]
}

// NewDocumentService creates a new document service.
func NewDocumentService[T DocumentEntity](cfg DocumentServiceConfig[T]) *DocumentService[T] {
	scopes := cfg.Scopes
	if scopes == nil {
		scopes = GlobalScopeResolver{}
	}
	return &DocumentService[T]{
		repo:       cfg.Repo,
		generator:  cfg.Generator,
		scopes:     scopes,
		stock:      cfg.Stock,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
		docType:    cfg.DocType,
		prefix:     cfg.Prefix,
		kind:       cfg.Kind,
		postings:   cfg.Postings,
	}
}

// Hooks returns the hook registry for entity-specific behavior.
func (s *DocumentService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *DocumentService[T]) assignNumber(ctx context.Context, doc T) error {
	if doc.GetNumber() != "" || s.generator == nil {
		return nil
	}

	scope, err := s.scopes.CurrentScope(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("entity", s.entityName)
	}

	var number string
	switch s.kind {
	case NumberInvoice:
		number, err = s.generator.NextInvoiceNumber(ctx, s.docType, scope, doc.GetDate())
	default:
		number, err = s.generator.NextCode(ctx, s.docType, s.prefix, scope)
	}
	if err != nil {
		return fmt.Errorf("generate %s number: %w", s.entityName, err)
	}

	doc.SetNumber(number)
	return nil
}

func (s *DocumentService[T]) applyStock(ctx context.Context, doc T) error {
	if s.postings == nil {
		return nil
	}
	postings, err := s.postings(ctx, doc)
	if err != nil {
		return err
	}
	return s.stock.Apply(ctx, postings)
}

func (s *DocumentService[T]) reverseStock(ctx context.Context, doc T) error {
	if s.postings == nil {
		return nil
	}
	postings, err := s.postings(ctx, doc)
	if err != nil {
		return err
	}
	return s.stock.Reverse(ctx, postings)
}

// Create persists a new document with its lines and applies its stock effect
// in one transaction.
func (s *DocumentService[T]) Create(ctx context.Context, doc T) error {
	if err := s.hooks.Run(ctx, BeforeCreate, doc); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.assignNumber(ctx, doc); err != nil {
			return err
		}
		doc.StampCreate(ctx)
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		if err := s.applyStock(ctx, doc); err != nil {
			return err
		}
		return s.hooks.Run(ctx, AfterCreate, doc)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, s.entityName+" created",
		"id", doc.GetID().String(),
		"number", doc.GetNumber())
	return nil
}

// GetByID retrieves a document with its lines.
func (s *DocumentService[T]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return doc, apperror.NewNotFound(s.entityName, docID.String())
		}
		return doc, err
	}
	return doc, nil
}

// Update replaces the document's lines and re-derives its stock effect: the
// stored lines are reversed, then the submitted lines applied, atomically
// with the header write.
func (s *DocumentService[T]) Update(ctx context.Context, doc T) error {
	if err := s.hooks.Run(ctx, BeforeUpdate, doc); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		stored, err := s.repo.GetByID(ctx, doc.GetID())
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound(s.entityName, doc.GetID().String())
			}
			return err
		}
		if err := s.reverseStock(ctx, stored); err != nil {
			return err
		}
		doc.StampUpdate(ctx)
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		if err := s.applyStock(ctx, doc); err != nil {
			return err
		}
		return s.hooks.Run(ctx, AfterUpdate, doc)
	})
}

// Delete reverses the document's stock effect and removes it.
func (s *DocumentService[T]) Delete(ctx context.Context, docID id.ID) error {
	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByID(ctx, docID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound(s.entityName, docID.String())
			}
			return err
		}
		if err := s.hooks.Run(ctx, BeforeDelete, doc); err != nil {
			return err
		}
		if err := s.reverseStock(ctx, doc); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return s.hooks.Run(ctx, AfterDelete, doc)
	})
}

// BatchDelete removes several documents, reversing every line of every
// document, in one transaction.
func (s *DocumentService[T]) BatchDelete(ctx context.Context, docIDs []id.ID) error {
	if len(docIDs) == 0 {
		return nil
	}

	txm, err := tenant.GetTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		byDocument := make(map[id.ID][]stock.Posting, len(docIDs))
		docs := make([]T, 0, len(docIDs))
		for _, docID := range docIDs {
			doc, err := s.repo.GetByID(ctx, docID)
			if err != nil {
				if apperror.IsNotFound(err) {
					return apperror.NewNotFound(s.entityName, docID.String())
				}
				return err
			}
			docs = append(docs, doc)
			if s.postings != nil {
				postings, err := s.postings(ctx, doc)
				if err != nil {
					return err
				}
				byDocument[docID] = postings
			}
		}

		if s.postings != nil {
			if err := s.stock.BatchReverse(ctx, byDocument); err != nil {
				return err
			}
		}

		for i, docID := range docIDs {
			if err := s.hooks.Run(ctx, BeforeDelete, docs[i]); err != nil {
				return err
			}
			if err := s.repo.Delete(ctx, docID); err != nil {
				return fmt.Errorf("delete %s: %w", s.entityName, err)
			}
		}
		return nil
	})
}

// List retrieves one page of documents.
func (s *DocumentService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}
