package controllers_test

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/controllers"
	"github.com/killallgit/tadabbur/pkg/protocol"
	"github.com/killallgit/tadabbur/pkg/stream"
	"github.com/killallgit/tadabbur/pkg/testutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(v any) error {
	args := m.Called(v)
	return args.Error(0)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
}

func sentMessages(raw json.RawMessage) []chat.Message {
	var frame protocol.MessagesFrame
	Expect(json.Unmarshal(raw, &frame)).To(Succeed())
	return frame.Messages
}

var _ = Describe("ChatController", func() {
	var (
		sender     *testutil.FakeSender
		controller *controllers.ChatController
	)

	BeforeEach(func() {
		sender = testutil.NewFakeSender()
		controller = controllers.NewChatController(sender, chat.DefaultModel,
			controllers.WithSessionIDFunc(sequentialIDs()))
	})

	Describe("NewChatController", func() {
		It("should start with an empty log and the default agent", func() {
			Expect(controller.GetMessageCount()).To(Equal(0))
			Expect(controller.Model()).To(Equal(chat.DefaultModel))
			Expect(controller.Profile().Name).To(Equal(chat.AgentTafseer))
			Expect(controller.Loading()).To(BeFalse())
			Expect(controller.Records()).NotTo(BeEmpty())
		})
	})

	Describe("Submit", func() {
		It("should append the user entry and an empty placeholder before any response", func() {
			Expect(controller.Submit("Hello")).To(Succeed())

			Expect(controller.Messages()).To(Equal([]chat.Message{
				{Role: chat.RoleUser, Content: "Hello"},
				{Role: chat.RoleAssistant, Content: ""},
			}))
			Expect(controller.Loading()).To(BeTrue())
			Expect(controller.TailState()).To(Equal(stream.TailPlaceholder))
		})

		It("should send the input as typed", func() {
			Expect(controller.Submit("  Bismillah\n")).To(Succeed())

			Expect(controller.Messages()[0].Content).To(Equal("  Bismillah\n"))
			Expect(sentMessages(sender.Sent()[0])).To(Equal([]chat.Message{
				{Role: chat.RoleUser, Content: "  Bismillah\n"},
			}))
		})

		It("should send the log including the new user entry but not the placeholder", func() {
			Expect(controller.Submit("Hello")).To(Succeed())

			sent := sender.Sent()
			Expect(sent).To(HaveLen(1))
			Expect(sentMessages(sent[0])).To(Equal([]chat.Message{
				{Role: chat.RoleUser, Content: "Hello"},
			}))
		})

		It("should reject blank input without touching the log", func() {
			err := controller.Submit("   \n ")

			Expect(errors.Is(err, controllers.ErrEmptyInput)).To(BeTrue())
			Expect(controller.GetMessageCount()).To(Equal(0))
			Expect(sender.Sent()).To(BeEmpty())
		})

		It("should never send more than the history window", func() {
			for i := 0; i < 8; i++ {
				Expect(controller.Submit(fmt.Sprintf("question %d", i))).To(Succeed())
				controller.HandleFrame(protocol.Frame{StreamEvent: "final_output", Text: protocol.Text(fmt.Sprintf("answer %d", i))})
			}

			for _, raw := range sender.Sent() {
				Expect(len(sentMessages(raw))).To(BeNumerically("<=", controllers.DefaultHistoryWindow))
			}

			last := sentMessages(sender.Sent()[7])
			Expect(last).To(HaveLen(10))
			Expect(last[9]).To(Equal(chat.Message{Role: chat.RoleUser, Content: "question 7"}))
			Expect(last[0]).To(Equal(chat.Message{Role: chat.RoleAssistant, Content: "answer 2"}))
		})

		It("should honor a custom window", func() {
			controller = controllers.NewChatController(sender, chat.DefaultModel, controllers.WithHistoryWindow(3))
			Expect(controller.Submit("one")).To(Succeed())
			Expect(controller.Submit("two")).To(Succeed())

			Expect(sentMessages(sender.Sent()[1])).To(Equal([]chat.Message{
				{Role: chat.RoleUser, Content: "one"},
				{Role: chat.RoleAssistant, Content: ""},
				{Role: chat.RoleUser, Content: "two"},
			}))
		})

		It("should keep the send failure as the last error", func() {
			sender.FailWith(errors.New("broken pipe"))

			err := controller.Submit("Hello")

			Expect(err).To(MatchError(ContainSubstring("broken pipe")))
			Expect(controller.LastError()).To(MatchError(ContainSubstring("failed to send message")))
			Expect(controller.GetMessageCount()).To(Equal(2))
		})

		It("should clear the last error on the next submit", func() {
			sender.FailWith(errors.New("broken pipe"))
			_ = controller.Submit("Hello")
			sender.FailWith(nil)

			Expect(controller.Submit("Again")).To(Succeed())
			Expect(controller.LastError()).To(BeNil())
		})
	})

	Describe("HandleFrame", func() {
		It("should stream a reply into the placeholder", func() {
			Expect(controller.Submit("Hello")).To(Succeed())

			controller.HandleFrame(protocol.Frame{StreamEvent: "token", Delta: "Wa "})
			controller.HandleFrame(protocol.Frame{StreamEvent: "token", Delta: "alaykum"})
			res := controller.HandleFrame(protocol.Frame{StreamEvent: "run_complete"})

			Expect(res.Completed).To(BeTrue())
			last, _ := chat.GetLastAssistantMessage(controller.Conversation())
			Expect(last.Content).To(Equal("Wa alaykum"))
			Expect(controller.Loading()).To(BeFalse())
		})

		It("should swap the agent profile on an agent frame", func() {
			res := controller.HandleFrame(protocol.Frame{Type: "agent", Agent: chat.AgentStoryTelling})

			Expect(res.Notice).NotTo(BeEmpty())
			Expect(controller.Profile().Name).To(Equal(chat.AgentStoryTelling))
			Expect(controller.GetMessageCount()).To(Equal(0))
		})

		It("should adopt the agent the server reports on session_init", func() {
			controller.HandleFrame(protocol.Frame{Type: "session_init", CurrentModel: "gpt-oss-20b", CurrentAgent: chat.AgentStoryTelling})

			Expect(controller.Profile().Name).To(Equal(chat.AgentStoryTelling))
			Expect(controller.ServerModel()).To(Equal("gpt-oss-20b"))
		})

		It("should re-select its model when session_init reports another", func() {
			_, err := controller.Bootstrap(chat.DefaultModel, chat.AgentTafseer)
			Expect(err).NotTo(HaveOccurred())
			sent := len(sender.Sent())

			controller.HandleFrame(protocol.Frame{Type: "session_init", CurrentModel: "gpt-oss-20b", CurrentAgent: chat.AgentTafseer})

			Expect(sender.Sent()).To(HaveLen(sent + 1))
			Expect(sender.Last()).To(Equal(map[string]any{
				"type":  "model-selection",
				"model": chat.DefaultModel,
			}))
			Expect(controller.Model()).To(Equal(chat.DefaultModel))
		})

		It("should stay quiet when session_init agrees on the model", func() {
			sent := len(sender.Sent())

			controller.HandleFrame(protocol.Frame{Type: "session_init", CurrentModel: chat.DefaultModel})

			Expect(sender.Sent()).To(HaveLen(sent))
		})
	})

	Describe("sessions", func() {
		It("should announce a new session once connected", func() {
			id, err := controller.StartSession()

			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("session-1"))
			Expect(sender.Last()).To(Equal(map[string]any{"type": "new-session", "session_id": "session-1"}))
			Expect(controller.SessionID()).To(Equal("session-1"))
		})

		It("should clear the log on a new chat and keep it through the echoed id", func() {
			Expect(controller.Submit("Hello")).To(Succeed())

			id, err := controller.NewChat()
			Expect(err).NotTo(HaveOccurred())
			Expect(controller.Messages()).To(BeEmpty())
			Expect(sender.Last()).To(Equal(map[string]any{"session_id": id}))

			Expect(controller.Submit("Fresh")).To(Succeed())
			res := controller.HandleFrame(protocol.Frame{Type: "session_id", SessionID: id})
			Expect(res.SessionChanged).To(BeFalse())
			Expect(controller.GetMessageCount()).To(Equal(2))
		})

		It("should resume a previous session", func() {
			Expect(controller.ResumeSession("a162542")).To(Succeed())

			Expect(controller.SessionID()).To(Equal("a162542"))
			Expect(sender.Last()).To(Equal(map[string]any{"session_id": "a162542"}))
		})

		It("should refuse to resume an empty session id", func() {
			err := controller.ResumeSession(" ")

			Expect(errors.Is(err, controllers.ErrEmptyInput)).To(BeTrue())
			Expect(sender.Sent()).To(BeEmpty())
		})
	})

	Describe("models and agents", func() {
		It("should select a known model", func() {
			Expect(controller.SelectModel("GPT-OSS-120B")).To(Succeed())

			Expect(controller.Model()).To(Equal("gpt-oss-120b"))
			Expect(sender.Last()).To(Equal(map[string]any{"type": "model-selection", "model": "gpt-oss-120b"}))
		})

		It("should reject an unknown model", func() {
			err := controller.SelectModel("llama3.1:8b")

			Expect(errors.Is(err, chat.ErrUnknownModel)).To(BeTrue())
			Expect(controller.Model()).To(Equal(chat.DefaultModel))
			Expect(sender.Sent()).To(BeEmpty())
		})

		It("should cycle through the catalog", func() {
			name, err := controller.CycleModel()

			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("deepseek-v3p1-terminus"))
		})

		It("should switch agents", func() {
			Expect(controller.SwitchAgent("story-telling")).To(Succeed())

			Expect(controller.Profile().Placeholder).To(Equal("Generate an Islamic story"))
			Expect(sender.Last()).To(Equal(map[string]any{"type": "agent", "agent": "story-telling"}))
		})

		It("should reject an unknown agent", func() {
			err := controller.SwitchAgent("poetry")

			Expect(errors.Is(err, chat.ErrUnknownAgent)).To(BeTrue())
		})
	})

	Describe("with a mocked sender", func() {
		var mockSender *MockSender

		BeforeEach(func() {
			mockSender = &MockSender{}
			controller = controllers.NewChatController(mockSender, chat.DefaultModel)
		})

		AfterEach(func() {
			mockSender.AssertExpectations(GinkgoT())
		})

		It("should send a messages frame", func() {
			mockSender.On("Send", mock.MatchedBy(func(f protocol.MessagesFrame) bool {
				return len(f.Messages) == 1 && f.Messages[0].Content == "Salam"
			})).Return(nil).Once()

			Expect(controller.Submit("Salam")).To(Succeed())
		})
	})
})
