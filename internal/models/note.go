package models

import (
	"time"
)

type Note struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Title      string     `json:"title" gorm:"type:varchar(100);not null"`
	Content    string     `json:"content" gorm:"type:varchar(8000);not null"`
	CreatedAt  time.Time  `json:"createdAt"`                  // set once by the store at creation
	ModifiedAt *time.Time `json:"modifiedAt"`                 // null until the first update
	OwnerID    uint       `json:"ownerId" gorm:"index;not null"` // foreign key, never reassigned
	Owner      User       `json:"-" gorm:"foreignKey:OwnerID"`
}

// NoteListItem is the reduced view returned by create and list.
type NoteListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoteDetail is the full view returned by a single-note fetch.
type NoteDetail struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	ModifiedAt *time.Time `json:"modifiedAt"`
}
