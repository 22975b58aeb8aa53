package document_repo

import (
	"tradebooks/internal/domain/documents/damage"
)

// DamageRepo implements damage.Repository.
type DamageRepo struct {
	*BaseDocumentRepo[*damage.Damage, damage.Line]
}

// NewDamageRepo creates a new damage repository.
func NewDamageRepo() *DamageRepo {
	return &DamageRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			"doc_damages", "doc_damage_lines",
			[]string{"number", "reason", "note"},
			func() *damage.Damage { return &damage.Damage{} },
			func(d *damage.Damage) []damage.Line { return d.Lines },
			func(d *damage.Damage, lines []damage.Line) { d.Lines = lines },
		),
	}
}

var _ damage.Repository = (*DamageRepo)(nil)
