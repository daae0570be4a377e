package stream

import (
	"errors"
	"fmt"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/protocol"
)

// Result describes what applying one frame did.
type Result struct {
	Kind       protocol.Kind
	Recognized bool
	LogChanged bool

	// Notice is set for frames that ask for a blocking notification.
	Notice string

	// Completed is true when this frame switched the loading indicator off.
	Completed bool

	// SessionChanged is true when the server moved the client to another
	// session and the log was cleared.
	SessionChanged bool
}

// Assembler applies inbound frames to the message log. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Assembler struct {
	conv        chat.Conversation
	loading     bool
	loadingText string
	finalized   bool

	sessionID   string
	serverModel string
	serverAgent string
	records     []chat.ChatRecord
	handler     Handler
}

func NewAssembler(model string) *Assembler {
	return &Assembler{
		conv:    chat.NewConversation(model),
		records: chat.DefaultRecords(),
	}
}

// SetHandler registers an observer for log mutations. nil removes it.
func (a *Assembler) SetHandler(h Handler) {
	a.handler = h
}

func (a *Assembler) Conversation() chat.Conversation {
	return a.conv
}

func (a *Assembler) Messages() []chat.Message {
	return chat.GetMessages(a.conv)
}

func (a *Assembler) Loading() bool {
	return a.loading
}

func (a *Assembler) LoadingText() string {
	return a.loadingText
}

func (a *Assembler) SessionID() string {
	return a.sessionID
}

func (a *Assembler) ServerModel() string {
	return a.serverModel
}

func (a *Assembler) ServerAgent() string {
	return a.serverAgent
}

func (a *Assembler) Records() []chat.ChatRecord {
	result := make([]chat.ChatRecord, len(a.records))
	copy(result, a.records)
	return result
}

func (a *Assembler) SetModel(model string) {
	a.conv = chat.WithModel(a.conv, model)
}

// SetSession records the session the client asked for without touching the log.
func (a *Assembler) SetSession(id string) {
	a.sessionID = id
}

// TailState reports the state of the trailing assistant entry.
func (a *Assembler) TailState() TailState {
	msg, ok := chat.GetLastAssistantMessage(a.conv)
	switch {
	case !ok:
		return TailAbsent
	case a.finalized:
		return TailFinalized
	case msg.Content == "":
		return TailPlaceholder
	default:
		return TailStreaming
	}
}

// StartTurn appends the user entry and an empty assistant placeholder and
// turns loading on.
func (a *Assembler) StartTurn(user chat.Message) {
	a.conv = chat.AddMessage(a.conv, user)
	a.conv = chat.AddMessage(a.conv, chat.NewPlaceholderMessage())
	a.loading = true
	a.loadingText = ""
	a.finalized = false
}

// Reset clears the log and the loading state.
func (a *Assembler) Reset() {
	a.conv = chat.Clear(a.conv)
	a.loading = false
	a.loadingText = ""
	a.finalized = false
}

// Apply classifies f by its discriminant and mutates the log accordingly.
func (a *Assembler) Apply(f protocol.Frame) Result {
	kind := f.Kind()
	res := Result{Kind: kind, Recognized: true}
	wasLoading := a.loading

	switch kind {
	case protocol.KindToken:
		a.appendDelta(f.Delta.String(), &res)

	case protocol.KindResponseChunk:
		a.appendDelta(f.Content.String(), &res)

	case protocol.KindMessageOutput, protocol.KindFinalOutput, protocol.KindResponse:
		text := f.Text.String()
		if text == "" {
			text = f.Content.String()
		}
		a.replaceTail(text, &res)
		a.loading = false

	case protocol.KindToolCalled:
		a.push(chat.NewActivityMessage(chat.KindToolCall, describeToolCall(f)), &res)

	case protocol.KindToolOutput:
		a.push(chat.NewActivityMessage(chat.KindToolResult, describeToolOutput(f)), &res)

	case protocol.KindAgentUpdated:
		a.push(chat.NewActivityMessage(chat.KindHandoff, describeHandoff(f)), &res)

	case protocol.KindRunItem:
		a.push(chat.NewActivityMessage(chat.KindProgress, describeRunItem(f)), &res)

	case protocol.KindRunComplete:
		a.loading = false

	case protocol.KindLoading:
		a.loadingText = f.Content.String()
		if f.Final {
			a.replaceTail(f.Content.String(), &res)
			a.loading = false
		}

	case protocol.KindAgent:
		res.Notice = agentNotice(f.Agent)

	case protocol.KindStreamingEnd:
		if _, ok := chat.GetLastAssistantMessage(a.conv); ok {
			a.finalized = true
		}

	case protocol.KindSessionInit:
		a.serverModel = f.CurrentModel
		a.serverAgent = f.CurrentAgent

	case protocol.KindSessionID:
		if f.SessionID != "" && f.SessionID != a.sessionID {
			a.sessionID = f.SessionID
			a.conv = chat.Clear(a.conv)
			a.finalized = false
			res.SessionChanged = true
			res.LogChanged = true
		}

	case protocol.KindChatHistory:
		records, err := chat.ParseRecords(f.ChatHistory)
		if errors.Is(err, chat.ErrNoHistory) {
			logger.Debug("Keeping current chat history: frame carried none")
			break
		}
		if err != nil {
			logger.Warn("Ignoring chat history frame: %v", err)
			break
		}
		a.records = records

	default:
		logger.Debug("Ignoring frame with unrecognized discriminant %q", kind)
		return Result{Kind: kind}
	}

	if f.Final {
		a.loading = false
	}

	if wasLoading && !a.loading {
		res.Completed = true
		a.finalized = true
		a.notifyComplete()
	}

	return res
}

func (a *Assembler) appendDelta(delta string, res *Result) {
	if delta == "" {
		return
	}
	a.conv = chat.AppendToLastAssistant(a.conv, delta)
	a.finalized = false
	res.LogChanged = true
	if a.handler != nil {
		if err := a.handler.OnChunk([]byte(delta)); err != nil {
			a.handler.OnError(err)
		}
	}
}

func (a *Assembler) replaceTail(content string, res *Result) {
	a.conv = chat.ReplaceLastAssistant(a.conv, content)
	a.finalized = true
	res.LogChanged = true
}

func (a *Assembler) push(msg chat.Message, res *Result) {
	a.conv = chat.AddMessage(a.conv, msg)
	a.finalized = false
	res.LogChanged = true
	if a.handler != nil {
		if err := a.handler.OnEntry(msg); err != nil {
			a.handler.OnError(err)
		}
	}
}

func (a *Assembler) notifyComplete() {
	if a.handler == nil {
		return
	}
	final, _ := chat.GetLastAssistantMessage(a.conv)
	if err := a.handler.OnComplete(final.Content); err != nil {
		a.handler.OnError(err)
	}
}

func agentNotice(agent string) string {
	if p, err := chat.FindAgentProfile(agent); err == nil {
		return fmt.Sprintf("Switched to %s. %s", p.Name, p.Greeting)
	}
	if agent == "" {
		return "The server switched agents."
	}
	return fmt.Sprintf("Switched to %s.", agent)
}
