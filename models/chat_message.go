package models

import "time"

// ChatMessage is one entry in the append-only conversation log between two
// users. ConversationKey is the canonical order-independent pair key so both
// participants' messages land in the same conversation.
type ChatMessage struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ConversationKey string    `gorm:"size:255;not null;index" json:"conversation_key"`
	SenderID        uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID      uint      `gorm:"not null;index" json:"receiver_id"`
	Message         string    `gorm:"type:text;not null" json:"message"`
	SentAt          time.Time `gorm:"not null" json:"sent_at"`

	// Relations
	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
