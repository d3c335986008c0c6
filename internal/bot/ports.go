package bot

// Sender delivers a reply to a chat. Implementations decide the
// transport and parse mode.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Inbound is one incoming chat message, already reduced to the fields
// the handler cares about.
type Inbound struct {
	ChatID      int64
	UserID      string
	DisplayName string
	Text        string
}
