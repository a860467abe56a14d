package types

import (
	"time"
)

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Description string    `gorm:"not null;column:description" json:"description"`
	Size        string    `gorm:"not null;column:size" json:"size"`
	Breakers    string    `gorm:"not null;column:breakers" json:"breakers"`
	Brand       string    `gorm:"not null;column:brand" json:"brand"`
	IPEnclosure *string   `gorm:"column:ip_enclosure" json:"ipEnclosure"`
	Pole        *string   `gorm:"column:pole" json:"pole"`
	Price       *string   `gorm:"column:price" json:"price"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
	Drawings    []Drawing `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"drawings"`
}

func (Product) TableName() string {
	return "product"
}
