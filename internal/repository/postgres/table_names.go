package postgres

import "fmt"

// TableNames holds dynamically prefixed table names. Each environment
// (dev_, test_, prod_) gets its own tables in the same database.
type TableNames struct {
	Users     string
	Documents string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:     fmt.Sprintf("%susers", prefix),
		Documents: fmt.Sprintf("%sdocuments", prefix),
	}
}
