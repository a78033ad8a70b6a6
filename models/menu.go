package models

import (
	"time"

	"gorm.io/datatypes"
)

// MenuItem is a catalog entry. The ordering core treats it as read-only:
// carts and orders copy the fields they need at the moment of use, so later
// catalog edits never reach back into existing carts or order history.
type MenuItem struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	Names     datatypes.JSONMap `json:"names" gorm:"type:json"` // language code -> display name
	Price     float64           `json:"price" gorm:"not null"`
	Discount  float64           `json:"discount" gorm:"default:0"` // percentage, 0-100
	ImageURL  string            `json:"image_url"`
	Category  string            `json:"category"`
	IsActive  bool              `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NameIn returns the display name for a language code, falling back to "en"
// and then to any available name.
func (m MenuItem) NameIn(lang string) string {
	if v, ok := m.Names[lang].(string); ok && v != "" {
		return v
	}
	if v, ok := m.Names["en"].(string); ok && v != "" {
		return v
	}
	for _, v := range m.Names {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
