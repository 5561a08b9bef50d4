package model

// ChatSession is one exchange with the AI assistant. Append-only: sessions
// are never updated or deleted.
type ChatSession struct {
	Model
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Message  string `gorm:"type:text;not null" json:"message"`
	Response string `gorm:"type:text;not null" json:"response"`
}
