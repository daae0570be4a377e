package controllers_test

import (
	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/controllers"
	"github.com/killallgit/tadabbur/pkg/testutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bootstrap", func() {
	var (
		sender     *testutil.FakeSender
		controller *controllers.ChatController
	)

	BeforeEach(func() {
		sender = testutil.NewFakeSender()
		controller = controllers.NewChatController(sender, chat.DefaultModel,
			controllers.WithSessionIDFunc(sequentialIDs()))
	})

	It("should always select the configured model", func() {
		id, err := controller.Bootstrap(chat.DefaultModel, chat.AgentTafseer)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("session-1"))

		Expect(sender.Sent()).To(HaveLen(2))
		Expect(sender.Last()).To(Equal(map[string]any{
			"type":  "model-selection",
			"model": chat.DefaultModel,
		}))
	})

	It("should only announce the session when nothing is configured", func() {
		_, err := controller.Bootstrap("", "")
		Expect(err).NotTo(HaveOccurred())

		Expect(sender.Sent()).To(HaveLen(1))
		Expect(sender.Last()).To(Equal(map[string]any{
			"type":       "new-session",
			"session_id": "session-1",
		}))
	})

	It("should select a non-default model and agent", func() {
		_, err := controller.Bootstrap("gpt-oss-20b", chat.AgentStoryTelling)
		Expect(err).NotTo(HaveOccurred())

		Expect(sender.Sent()).To(HaveLen(3))
		Expect(controller.Model()).To(Equal("gpt-oss-20b"))
		Expect(controller.Profile().Name).To(Equal(chat.AgentStoryTelling))
		Expect(sender.Last()).To(Equal(map[string]any{
			"type":  "agent",
			"agent": chat.AgentStoryTelling,
		}))
	})

	It("should fail on an unknown model after announcing the session", func() {
		id, err := controller.Bootstrap("gpt-2", "")
		Expect(err).To(MatchError(chat.ErrUnknownModel))
		Expect(id).To(Equal("session-1"))
		Expect(sender.Sent()).To(HaveLen(1))
	})

	It("should fail on an unknown agent", func() {
		_, err := controller.Bootstrap("", "poetry")
		Expect(err).To(MatchError(chat.ErrUnknownAgent))
	})
})
