package repositories

import (
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type Repositories struct {
	Filters *FilterRepository
}

func New(db postgres.DB) *Repositories {
	return &Repositories{
		Filters: &FilterRepository{db: db},
	}
}
