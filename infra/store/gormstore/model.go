package gormstore

import "time"

// Node is one stored value. Collections have no row of their own; their
// children point at them through Parent.
type Node struct {
	Path      string `gorm:"primaryKey;size:512"`
	Parent    string `gorm:"index;not null;size:512"`
	Key       string `gorm:"not null;size:255"`
	Value     string `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Node model.
func (Node) TableName() string {
	return "nodes"
}
