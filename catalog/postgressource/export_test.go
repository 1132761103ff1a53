package postgressource

import (
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgressource/internal/adapters"
)

func NewSourceFromAdapter(db adapters.DBAdapter, options ...Option) (Source, error) {
	return newSource(db, options)
}

func (s Source) BuildSelectQuery() (string, error) {
	return s.buildSelectQuery()
}
