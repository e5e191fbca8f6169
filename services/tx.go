// services/tx.go
package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rowLock adds SELECT ... FOR UPDATE on dialects that support it. The sqlite
// database used in tests rejects the clause and serializes writers on its
// own, so it is skipped there.
func rowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
