package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/protocol"
	"github.com/killallgit/tadabbur/pkg/socket"
	"github.com/killallgit/tadabbur/pkg/stream"
)

const DefaultHistoryWindow = 10

var ErrEmptyInput = errors.New("input is empty")

// ChatController owns the message log of one connection and everything the
// client sends over it.
type ChatController struct {
	sender    socket.Sender
	assembler *stream.Assembler
	catalog   *chat.ModelCatalog
	profile   chat.AgentProfile
	window    int
	newID     func() string
	lastErr   error
}

type Option func(*ChatController)

// WithHistoryWindow sets how many trailing entries a compose frame carries.
func WithHistoryWindow(n int) Option {
	return func(cc *ChatController) {
		if n > 0 {
			cc.window = n
		}
	}
}

func WithModelCatalog(catalog *chat.ModelCatalog) Option {
	return func(cc *ChatController) {
		if catalog != nil {
			cc.catalog = catalog
		}
	}
}

// WithAgentProfile sets the initial agent without notifying the server.
func WithAgentProfile(p chat.AgentProfile) Option {
	return func(cc *ChatController) {
		cc.profile = p
	}
}

// WithSessionIDFunc replaces uuid generation, mostly for tests.
func WithSessionIDFunc(fn func() string) Option {
	return func(cc *ChatController) {
		if fn != nil {
			cc.newID = fn
		}
	}
}

func NewChatController(sender socket.Sender, model string, opts ...Option) *ChatController {
	if model == "" {
		model = chat.DefaultModel
	}
	cc := &ChatController{
		sender:    sender,
		assembler: stream.NewAssembler(model),
		catalog:   chat.DefaultModelCatalog(),
		profile:   chat.DefaultAgentProfile(),
		window:    DefaultHistoryWindow,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(cc)
	}
	return cc
}

// SetHandler forwards log mutations to h.
func (cc *ChatController) SetHandler(h stream.Handler) {
	cc.assembler.SetHandler(h)
}

// Submit appends the user entry and an empty assistant placeholder, then
// sends the trailing window of the log including the new user entry.
func (cc *ChatController) Submit(input string) error {
	if strings.TrimSpace(input) == "" {
		return ErrEmptyInput
	}

	user := chat.NewUserMessage(input)
	payload := chat.TrailingWindow(chat.AddMessage(cc.assembler.Conversation(), user), cc.window)

	cc.assembler.StartTurn(user)
	cc.lastErr = nil

	logger.WithComponent("chat_controller").Debugw("Sending compose frame",
		"window", len(payload),
		"session_id", cc.assembler.SessionID())

	return cc.send(protocol.Messages(payload), "message")
}

// HandleFrame applies one inbound frame to the log.
func (cc *ChatController) HandleFrame(f protocol.Frame) stream.Result {
	res := cc.assembler.Apply(f)

	switch res.Kind {
	case protocol.KindAgent:
		if p, err := chat.FindAgentProfile(f.Agent); err == nil {
			cc.profile = p
		}
	case protocol.KindSessionInit:
		if p, err := chat.FindAgentProfile(f.CurrentAgent); err == nil {
			cc.profile = p
		}
		cc.reconcileModel(f.CurrentModel)
	}
	return res
}

// reconcileModel re-sends the client's model when the server reports a
// different one, so both sides agree on what answers the next prompt.
func (cc *ChatController) reconcileModel(serverModel string) {
	if serverModel == "" || strings.EqualFold(serverModel, cc.Model()) {
		return
	}
	logger.WithComponent("chat_controller").Infow("Server model differs, re-selecting",
		"server_model", serverModel,
		"client_model", cc.Model())
	if err := cc.SelectModel(cc.Model()); err != nil {
		logger.Warn("Failed to re-select model %q: %v", cc.Model(), err)
	}
}

// StartSession announces a fresh session id right after connecting.
func (cc *ChatController) StartSession() (string, error) {
	id := cc.newID()
	cc.assembler.SetSession(id)
	return id, cc.send(protocol.NewSession(id), "session")
}

// NewChat switches to a fresh session and clears the log.
func (cc *ChatController) NewChat() (string, error) {
	id := cc.newID()
	cc.switchSession(id)
	return id, cc.send(protocol.Session(id), "session")
}

// ResumeSession asks the server for an existing session and clears the log.
func (cc *ChatController) ResumeSession(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("session id: %w", ErrEmptyInput)
	}
	cc.switchSession(id)
	return cc.send(protocol.Session(id), "session")
}

func (cc *ChatController) switchSession(id string) {
	cc.assembler.Reset()
	cc.assembler.SetSession(id)
	cc.lastErr = nil
}

// SelectModel validates name against the catalog and tells the server.
func (cc *ChatController) SelectModel(name string) error {
	info, err := cc.catalog.Find(name)
	if err != nil {
		return err
	}
	cc.assembler.SetModel(info.Name)
	return cc.send(protocol.ModelSelection(info.Name), "model selection")
}

// CycleModel selects the catalog entry after the current model.
func (cc *ChatController) CycleModel() (string, error) {
	next := cc.catalog.Next(cc.Model())
	return next.Name, cc.SelectModel(next.Name)
}

// SwitchAgent tells the server to change agent and swaps the greeting.
func (cc *ChatController) SwitchAgent(name string) error {
	p, err := chat.FindAgentProfile(name)
	if err != nil {
		return err
	}
	cc.profile = p
	return cc.send(protocol.SwitchAgent(p.Name), "agent switch")
}

func (cc *ChatController) send(v any, what string) error {
	if cc.sender == nil {
		cc.lastErr = fmt.Errorf("failed to send %s: %w", what, socket.ErrClosed)
		return cc.lastErr
	}
	if err := cc.sender.Send(v); err != nil {
		logger.Error("Failed to send %s: %v", what, err)
		cc.lastErr = fmt.Errorf("failed to send %s: %w", what, err)
		return cc.lastErr
	}
	return nil
}

func (cc *ChatController) Messages() []chat.Message {
	return cc.assembler.Messages()
}

func (cc *ChatController) Conversation() chat.Conversation {
	return cc.assembler.Conversation()
}

func (cc *ChatController) GetMessageCount() int {
	return chat.GetMessageCount(cc.assembler.Conversation())
}

func (cc *ChatController) Loading() bool {
	return cc.assembler.Loading()
}

func (cc *ChatController) LoadingText() string {
	return cc.assembler.LoadingText()
}

func (cc *ChatController) TailState() stream.TailState {
	return cc.assembler.TailState()
}

// LastError returns the most recent send failure, cleared on the next submit.
func (cc *ChatController) LastError() error {
	return cc.lastErr
}

func (cc *ChatController) ClearError() {
	cc.lastErr = nil
}

func (cc *ChatController) Profile() chat.AgentProfile {
	return cc.profile
}

func (cc *ChatController) SessionID() string {
	return cc.assembler.SessionID()
}

func (cc *ChatController) Model() string {
	return cc.assembler.Conversation().Model
}

// ServerModel is the model the server reported in session_init, if any.
func (cc *ChatController) ServerModel() string {
	return cc.assembler.ServerModel()
}

func (cc *ChatController) Records() []chat.ChatRecord {
	return cc.assembler.Records()
}

func (cc *ChatController) Catalog() *chat.ModelCatalog {
	return cc.catalog
}
