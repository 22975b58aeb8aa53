package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradebooks/internal/core/entity"
	"tradebooks/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Symbol string  `db:"symbol" json:"symbol"`
	Note   *string `db:"-" json:"note,omitempty"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{
		"id", "tenant_id", "version",
		"code", "name",
		"created_at", "created_by_id", "updated_at", "updated_by_id",
		"symbol",
	}

	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "note")
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	// Repositories instantiate with the pointer type; columns must match.
	assert.Equal(t, ExtractDBColumns[mockCatalog](), ExtractDBColumns[*mockCatalog]())
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	now := time.Now().UTC()
	note := "skip me"
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{
				ID:       id.New(),
				TenantID: id.New(),
				Version:  5,
			},
			Code: "UN-000001",
			Name: "Piece",
			AuditFields: entity.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Symbol: "pcs",
		Note:   &note,
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, cat.TenantID, m["tenant_id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "UN-000001", m["code"])
	assert.Equal(t, "Piece", m["name"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "pcs", m["symbol"])
	assert.NotContains(t, m, "note")
	assert.NotContains(t, m, "-")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Symbol: "kg"}
	m := StructToMap(cat)
	assert.Equal(t, "kg", m["symbol"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
