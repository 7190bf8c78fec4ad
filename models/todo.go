package models

import "time"

// Todo is an item of the todo-list app.
type Todo struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Slug        string     `json:"slug" gorm:"size:220;index"`
	Description string     `json:"description" gorm:"type:text"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Resolved    bool       `json:"resolved" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
