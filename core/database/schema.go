package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// VerifyTables checks that the given tables exist before a run starts.
// The schema is owned by the provisioning service; failing here gives a
// clearer error than a mid-transaction storage fault.
func VerifyTables(db *gorm.DB, tables ...string) error {
	var missing []string
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required tables missing from database: %s", strings.Join(missing, ", "))
	}
	return nil
}
