package models

// ComboItem links a COMBO product to one of its children with a multiplier.
type ComboItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ProductID uint     `gorm:"not null;index" json:"product_id"`
	ChildID   uint     `gorm:"not null" json:"child_id"`
	Child     *Product `gorm:"foreignKey:ChildID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"child,omitempty"`
	Quantity  int      `gorm:"not null;default:1" json:"quantity"`
}
