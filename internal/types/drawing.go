package types

import (
	"time"
)

type Drawing struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index;column:product_id" json:"productId"`
	FilePath  string    `gorm:"not null;column:file_path" json:"filePath"`
	FileType  string    `gorm:"not null;column:file_type" json:"fileType"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Drawing) TableName() string {
	return "drawing"
}
