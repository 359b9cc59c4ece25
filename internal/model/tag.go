package model

import "time"

const (
	DefaultTagColour = "#6b7280"
	MaxTagNameLength = 100
)

type Tag struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	Colour    string `gorm:"size:32;not null;default:'#6b7280'"`
	CreatedAt time.Time
}

// TodoItemTag links an item to a tag. The pair is the primary key, so a link exists at most once.
type TodoItemTag struct {
	TodoItemID int64 `gorm:"primaryKey"`
	TagID      int64 `gorm:"primaryKey;index"`
	CreatedAt  time.Time
}
