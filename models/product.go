package models

import "time"

// Product types
const (
	ProductTypeSingle = "SINGLE"
	ProductTypeCombo  = "COMBO"
)

type Product struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CategoryID  *uint       `gorm:"index" json:"category_id,omitempty"`
	Category    *Category   `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	SKU         string      `gorm:"type:varchar(64)" json:"sku"`
	Price       float64     `gorm:"type:decimal(10,2);not null" json:"price"`
	Pieces      int         `gorm:"not null;default:0" json:"pieces"`
	Weight      *float64    `json:"weight,omitempty"`
	Type        string      `gorm:"type:varchar(10);not null;default:'SINGLE'" json:"type"`
	Description string      `gorm:"type:text" json:"description"`
	Image       *string     `gorm:"type:varchar(255)" json:"image,omitempty"`
	ComboItems  []ComboItem `gorm:"foreignKey:ProductID" json:"combo_items,omitempty"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

// StockDeduction is one piece-count decrement produced by ordering a product.
type StockDeduction struct {
	ProductID uint
	Pieces    int
}

// Deductions returns the stock decrements caused by ordering qty units.
// A COMBO deducts from each child (multiplied by the child quantity) and
// never from its own pieces; a SINGLE deducts from itself.
func (p *Product) Deductions(qty int) []StockDeduction {
	if p.Type == ProductTypeCombo {
		out := make([]StockDeduction, 0, len(p.ComboItems))
		for _, ci := range p.ComboItems {
			out = append(out, StockDeduction{
				ProductID: ci.ChildID,
				Pieces:    qty * ci.Quantity,
			})
		}
		return out
	}
	return []StockDeduction{{ProductID: p.ID, Pieces: qty}}
}
