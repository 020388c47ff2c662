package domain

// Item is the secondary resource managed by authenticated users.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description *string
	IsActive    bool
	Metadata
}

// ItemPatch lists the fields an update may change; nil means untouched.
type ItemPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Apply copies the set fields of the patch onto the item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = p.Description
	}
	if p.IsActive != nil {
		item.IsActive = *p.IsActive
	}
}
