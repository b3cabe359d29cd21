package repository

import "database/sql"

type Repository struct {
	Catalog CatalogRepositoryInterface
	Orders  OrderRepositoryInterface
}

func New(db *sql.DB) *Repository {
	return &Repository{
		Catalog: NewCatalogRepository(db),
		Orders:  NewOrderRepository(db),
	}
}
