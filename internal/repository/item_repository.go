package repository

import (
	"context"

	"github.com/spec-kit/modular-api/internal/domain"
)

// ItemRepository manages items; every query is scoped to the owning user.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	Get(ctx context.Context, ownerID, id string) (*domain.Item, error)
	List(ctx context.Context, ownerID string, offset, limit int) ([]domain.Item, error)
	Delete(ctx context.Context, ownerID, id string) (*domain.Item, error)
}

type itemRepository struct {
	db DBTX
}

// NewItemRepository builds the repository.
func NewItemRepository(db DBTX) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (owner_id, name, description, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		item.OwnerID,
		item.Name,
		item.Description,
		item.IsActive,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET name=$1, description=$2, is_active=$3, updated_at=NOW()
        WHERE id=$4 AND owner_id=$5
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.IsActive,
		item.ID,
		item.OwnerID,
	).Scan(&item.UpdatedAt)
	return mapNoRows(err)
}

func (r *itemRepository) Get(ctx context.Context, ownerID, id string) (*domain.Item, error) {
	const query = `
        SELECT id, owner_id, name, description, is_active, created_at, updated_at
        FROM items WHERE id=$1 AND owner_id=$2`
	var item domain.Item
	if err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Description,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, ownerID string, offset, limit int) ([]domain.Item, error) {
	const query = `
        SELECT id, owner_id, name, description, is_active, created_at, updated_at
        FROM items WHERE owner_id=$1
        ORDER BY created_at, id
        OFFSET $2 LIMIT $3`
	rows, err := r.db.Query(ctx, query, ownerID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.IsActive, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *itemRepository) Delete(ctx context.Context, ownerID, id string) (*domain.Item, error) {
	const query = `
        DELETE FROM items WHERE id=$1 AND owner_id=$2
        RETURNING id, owner_id, name, description, is_active, created_at, updated_at`
	var item domain.Item
	if err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&item.ID,
		&item.OwnerID,
		&item.Name,
		&item.Description,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, mapNoRows(err)
	}
	return &item, nil
}
