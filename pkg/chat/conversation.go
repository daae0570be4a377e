package chat

// Conversation is the message log of a chat session. Entries are addressed
// by index only; the trailing assistant entry is the one streaming updates
// are written into.
type Conversation struct {
	Messages []Message
	Model    string
}

func NewConversation(model string) Conversation {
	return Conversation{
		Messages: make([]Message, 0),
		Model:    model,
	}
}

func AddMessage(conv Conversation, msg Message) Conversation {
	messages := make([]Message, len(conv.Messages)+1)
	copy(messages, conv.Messages)
	messages[len(conv.Messages)] = msg

	return Conversation{
		Messages: messages,
		Model:    conv.Model,
	}
}

func GetMessages(conv Conversation) []Message {
	result := make([]Message, len(conv.Messages))
	copy(result, conv.Messages)
	return result
}

func GetMessageCount(conv Conversation) int {
	return len(conv.Messages)
}

func GetLastMessage(conv Conversation) (Message, bool) {
	if len(conv.Messages) == 0 {
		return Message{}, false
	}
	return conv.Messages[len(conv.Messages)-1], true
}

// LastAssistantIndex returns the index of the trailing assistant entry, or
// -1 when the log holds none.
func LastAssistantIndex(conv Conversation) int {
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].IsAssistant() {
			return i
		}
	}
	return -1
}

func GetLastAssistantMessage(conv Conversation) (Message, bool) {
	idx := LastAssistantIndex(conv)
	if idx < 0 {
		return Message{}, false
	}
	return conv.Messages[idx], true
}

func GetLastUserMessage(conv Conversation) (Message, bool) {
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		msg := conv.Messages[i]
		if msg.IsUser() {
			return msg, true
		}
	}
	return Message{}, false
}

// AppendToLastAssistant appends delta to the trailing assistant entry,
// creating one when the log has no assistant entry yet.
func AppendToLastAssistant(conv Conversation, delta string) Conversation {
	idx := LastAssistantIndex(conv)
	if idx < 0 {
		return AddMessage(conv, NewAssistantMessage(delta))
	}
	return replaceAt(conv, idx, conv.Messages[idx].Content+delta)
}

// ReplaceLastAssistant overwrites the trailing assistant entry with an
// authoritative reply, creating one when the log has no assistant entry yet.
// The replaced entry is a reply even if it started out as activity.
func ReplaceLastAssistant(conv Conversation, content string) Conversation {
	idx := LastAssistantIndex(conv)
	if idx < 0 {
		return AddMessage(conv, NewAssistantMessage(content))
	}
	messages := GetMessages(conv)
	messages[idx] = NewAssistantMessage(content)
	return Conversation{
		Messages: messages,
		Model:    conv.Model,
	}
}

func replaceAt(conv Conversation, idx int, content string) Conversation {
	messages := GetMessages(conv)
	messages[idx] = messages[idx].WithContent(content)
	return Conversation{
		Messages: messages,
		Model:    conv.Model,
	}
}

// TrailingWindow returns at most the last n messages, oldest first.
func TrailingWindow(conv Conversation, n int) []Message {
	if n <= 0 || len(conv.Messages) == 0 {
		return []Message{}
	}
	if n > len(conv.Messages) {
		n = len(conv.Messages)
	}
	result := make([]Message, n)
	copy(result, conv.Messages[len(conv.Messages)-n:])
	return result
}

func GetMessagesByRole(conv Conversation, role string) []Message {
	var result []Message
	for _, msg := range conv.Messages {
		if msg.Role == role {
			result = append(result, msg)
		}
	}
	return result
}

func IsEmpty(conv Conversation) bool {
	return len(conv.Messages) == 0
}

func WithModel(conv Conversation, model string) Conversation {
	return Conversation{
		Messages: conv.Messages,
		Model:    model,
	}
}

// Clear drops every entry but keeps the selected model.
func Clear(conv Conversation) Conversation {
	return NewConversation(conv.Model)
}
