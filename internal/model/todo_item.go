package model

import (
	"time"

	"github.com/guregu/null/v5"
)

type TodoItem struct {
	ID               int64         `gorm:"primaryKey"`
	ListID           int64         `gorm:"not null;index"`
	Title            null.String   `gorm:"size:200"`
	Note             null.String   `gorm:"type:text"`
	Priority         PriorityLevel `gorm:"not null;default:0"`
	Reminder         *time.Time
	BackgroundColour Colour `gorm:"size:32;not null;default:'#FFFFFF'"`
	Done             bool   `gorm:"not null;default:false"`
	SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time

	Tags []Tag `gorm:"many2many:todo_item_tags;constraint:OnDelete:CASCADE"`
}

// SetDone moves the item between pending and done. It reports true only when the item
// goes from pending to done, which is when a completion notification is due.
func (i *TodoItem) SetDone(done bool) (completed bool) {
	completed = done && !i.Done
	i.Done = done
	return completed
}
