package model

import "time"

// MaxTitleLength bounds list and item titles.
const MaxTitleLength = 200

type TodoList struct {
	ID     int64  `gorm:"primaryKey"`
	Title  string `gorm:"size:200;not null"`
	Colour Colour `gorm:"size:32;not null;default:'#FFFFFF'"`
	SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []TodoItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}
