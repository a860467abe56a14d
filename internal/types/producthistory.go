package types

import (
	"time"

	"gorm.io/datatypes"
)

const (
	HistoryActionCreated = "created"
	HistoryActionUpdated = "updated"
	HistoryActionDeleted = "deleted"
)

// ProductHistory rows deliberately carry no foreign key so they survive
// deletion of the product they describe.
type ProductHistory struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64          `gorm:"not null;index;column:product_id" json:"productId"`
	Action    string         `gorm:"not null;column:action" json:"action"`
	Field     *string        `gorm:"column:field" json:"field"`
	OldValue  *string        `gorm:"column:old_value" json:"oldValue"`
	NewValue  *string        `gorm:"column:new_value" json:"newValue"`
	UserID    *string        `gorm:"column:user_id" json:"userId"`
	Changes   datatypes.JSON `gorm:"column:changes" json:"changes"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
}

func (ProductHistory) TableName() string {
	return "product_history"
}
