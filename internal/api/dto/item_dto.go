package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/modular-api/internal/domain"
)

// ItemCreateRequest payload for new items.
type ItemCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Validate checks the create payload.
func (r ItemCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// ItemUpdateRequest carries a partial update; absent fields stay unchanged.
type ItemUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// Validate checks the update payload.
func (r ItemUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

// Patch converts the request into a domain patch.
func (r ItemUpdateRequest) Patch() domain.ItemPatch {
	return domain.ItemPatch{Name: r.Name, Description: r.Description, IsActive: r.IsActive}
}

// ItemResponse is the public view of an item.
type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

// NewItemResponse maps a domain item.
func NewItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		IsActive:    item.IsActive,
	}
}

// NewItemListResponse maps a slice of items.
func NewItemListResponse(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewItemResponse(&items[i]))
	}
	return out
}
