package stream_test

import (
	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/protocol"
	"github.com/killallgit/tadabbur/pkg/stream"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func decode(raw string) protocol.Frame {
	f, err := protocol.Decode([]byte(raw))
	Expect(err).NotTo(HaveOccurred())
	return f
}

var _ = Describe("Assembler", func() {
	var (
		asm       *stream.Assembler
		chunks    []string
		entries   []chat.Message
		completed []string
	)

	BeforeEach(func() {
		chunks, entries, completed = nil, nil, nil
		asm = stream.NewAssembler(chat.DefaultModel)
		asm.SetHandler(stream.HandlerFunc{
			ChunkFunc: func(chunk []byte) error {
				chunks = append(chunks, string(chunk))
				return nil
			},
			EntryFunc: func(msg chat.Message) error {
				entries = append(entries, msg)
				return nil
			},
			CompleteFunc: func(content string) error {
				completed = append(completed, content)
				return nil
			},
		})
	})

	Describe("StartTurn", func() {
		It("should append the user entry and an empty placeholder", func() {
			asm.StartTurn(chat.NewUserMessage("Hello"))

			Expect(asm.Messages()).To(Equal([]chat.Message{
				{Role: chat.RoleUser, Content: "Hello"},
				{Role: chat.RoleAssistant, Content: ""},
			}))
			Expect(asm.Loading()).To(BeTrue())
			Expect(asm.TailState()).To(Equal(stream.TailPlaceholder))
		})
	})

	Describe("token frames", func() {
		It("should concatenate deltas into the trailing assistant entry", func() {
			asm.StartTurn(chat.NewUserMessage("Hi"))

			for _, d := range []string{"In the ", "name of ", "God"} {
				res := asm.Apply(protocol.Frame{StreamEvent: "token", Delta: protocol.Text(d)})
				Expect(res.Recognized).To(BeTrue())
				Expect(res.LogChanged).To(BeTrue())
			}

			msgs := asm.Messages()
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[1].Content).To(Equal("In the name of God"))
			Expect(asm.TailState()).To(Equal(stream.TailStreaming))
			Expect(asm.Loading()).To(BeTrue())
			Expect(chunks).To(Equal([]string{"In the ", "name of ", "God"}))
		})

		It("should create an assistant entry when none exists", func() {
			asm.Apply(decode(`{"stream_event":"token","delta":"orphan"}`))

			Expect(asm.Messages()).To(Equal([]chat.Message{
				{Role: chat.RoleAssistant, Content: "orphan"},
			}))
		})

		It("should treat assistance_response_chunk content as a delta", func() {
			asm.StartTurn(chat.NewUserMessage("Hi"))
			asm.Apply(decode(`{"type":"assistance_response_chunk","content":"Peace "}`))
			asm.Apply(decode(`{"type":"assistance_response_chunk","content":"be upon you"}`))

			last, ok := chat.GetLastAssistantMessage(asm.Conversation())
			Expect(ok).To(BeTrue())
			Expect(last.Content).To(Equal("Peace be upon you"))
		})
	})

	Describe("final output frames", func() {
		DescribeTable("should replace rather than append and stop loading",
			func(raw string, want string) {
				asm.StartTurn(chat.NewUserMessage("Hi"))
				asm.Apply(decode(`{"stream_event":"token","delta":"draft"}`))

				res := asm.Apply(decode(raw))

				last, _ := chat.GetLastAssistantMessage(asm.Conversation())
				Expect(last.Content).To(Equal(want))
				Expect(asm.Loading()).To(BeFalse())
				Expect(res.Completed).To(BeTrue())
				Expect(asm.TailState()).To(Equal(stream.TailFinalized))
				Expect(completed).To(Equal([]string{want}))
			},
			Entry("message_output", `{"stream_event":"message_output","text":"final answer"}`, "final answer"),
			Entry("final_output", `{"stream_event":"final_output","text":"final answer"}`, "final answer"),
			Entry("final_output falling back to content", `{"stream_event":"final_output","content":"from content"}`, "from content"),
			Entry("assistance_response", `{"type":"assistance_response","content":"server reply","final":true}`, "server reply"),
		)

		It("should render non-string payloads as compact JSON", func() {
			asm.StartTurn(chat.NewUserMessage("Hi"))
			asm.Apply(decode(`{"stream_event":"final_output","text":{"surah": 1, "ayah": 2}}`))

			last, _ := chat.GetLastAssistantMessage(asm.Conversation())
			Expect(last.Content).To(Equal(`{"surah":1,"ayah":2}`))
		})
	})

	Describe("activity frames", func() {
		BeforeEach(func() {
			asm.StartTurn(chat.NewUserMessage("Explain 2:255"))
		})

		It("should push a tool call entry", func() {
			asm.Apply(decode(`{"stream_event":"tool_called","tool_name":"search_tafsir","tool_input":{"ayah":"2:255"}}`))

			msgs := asm.Messages()
			Expect(msgs).To(HaveLen(3))
			Expect(msgs[2].Kind).To(Equal(chat.KindToolCall))
			Expect(msgs[2].Content).To(ContainSubstring("Calling `search_tafsir`"))
			Expect(msgs[2].Content).To(ContainSubstring("```json"))
			Expect(msgs[2].Content).To(ContainSubstring(`"ayah": "2:255"`))
			Expect(entries).To(HaveLen(1))
		})

		It("should push a tool result entry", func() {
			asm.Apply(decode(`{"stream_event":"tool_output","output":"Ayat al-Kursi"}`))

			msgs := asm.Messages()
			Expect(msgs[2].Kind).To(Equal(chat.KindToolResult))
			Expect(msgs[2].Content).To(Equal("Tool result\n\n> Ayat al-Kursi"))
		})

		It("should push a handoff entry", func() {
			asm.Apply(decode(`{"stream_event":"agent_updated","new_agent_name":"Story Teller"}`))

			msgs := asm.Messages()
			Expect(msgs[2].Kind).To(Equal(chat.KindHandoff))
			Expect(msgs[2].Content).To(Equal("Handing off to **Story Teller**"))
		})

		It("should push a progress entry mentioning the item type", func() {
			asm.Apply(decode(`{"stream_event":"run_item","item_type":"reasoning_item"}`))

			msgs := asm.Messages()
			Expect(msgs[2].Kind).To(Equal(chat.KindProgress))
			Expect(msgs[2].Content).To(ContainSubstring("reasoning_item"))
		})

		It("should stream later tokens into the newest assistant entry", func() {
			asm.Apply(decode(`{"stream_event":"tool_called","tool_name":"lookup"}`))
			asm.Apply(decode(`{"stream_event":"token","delta":" done"}`))

			msgs := asm.Messages()
			Expect(msgs).To(HaveLen(3))
			Expect(msgs[1].Content).To(BeEmpty())
			Expect(msgs[2].Content).To(Equal("Calling `lookup` done"))
		})
	})

	Describe("loading", func() {
		BeforeEach(func() {
			asm.StartTurn(chat.NewUserMessage("Hi"))
		})

		It("should stop on run_complete without touching the log", func() {
			before := asm.Messages()
			res := asm.Apply(decode(`{"stream_event":"run_complete"}`))

			Expect(asm.Loading()).To(BeFalse())
			Expect(res.Completed).To(BeTrue())
			Expect(res.LogChanged).To(BeFalse())
			Expect(asm.Messages()).To(Equal(before))
		})

		It("should update the loading text", func() {
			asm.Apply(decode(`{"type":"loading_message","content":"Searching tafsir..."}`))

			Expect(asm.LoadingText()).To(Equal("Searching tafsir..."))
			Expect(asm.Loading()).To(BeTrue())
		})

		It("should replace the trailing entry with a final loading message", func() {
			asm.Apply(decode(`{"type":"loading_message","content":"No answer available","final":true}`))

			last, _ := chat.GetLastAssistantMessage(asm.Conversation())
			Expect(last.Content).To(Equal("No answer available"))
			Expect(asm.Loading()).To(BeFalse())
		})

		It("should stop on any recognized frame carrying final", func() {
			asm.Apply(decode(`{"stream_event":"token","delta":"last","final":true}`))

			Expect(asm.Loading()).To(BeFalse())
			Expect(completed).To(Equal([]string{"last"}))
		})

		It("should complete only once", func() {
			asm.Apply(decode(`{"stream_event":"final_output","text":"done"}`))
			res := asm.Apply(decode(`{"stream_event":"run_complete"}`))

			Expect(res.Completed).To(BeFalse())
			Expect(completed).To(HaveLen(1))
		})
	})

	Describe("unrecognized frames", func() {
		It("should leave the log and loading unchanged", func() {
			asm.StartTurn(chat.NewUserMessage("Hi"))
			before := asm.Messages()

			res := asm.Apply(decode(`{"stream_event":"heartbeat","delta":"x","final":true}`))

			Expect(res.Recognized).To(BeFalse())
			Expect(asm.Messages()).To(Equal(before))
			Expect(asm.Loading()).To(BeTrue())
		})

		It("should ignore frames without a discriminant", func() {
			res := asm.Apply(decode(`{"content":"stray"}`))

			Expect(res.Recognized).To(BeFalse())
			Expect(asm.Messages()).To(BeEmpty())
		})
	})

	Describe("session frames", func() {
		It("should raise a notice for the legacy agent frame", func() {
			res := asm.Apply(decode(`{"type":"agent","agent":"story-telling"}`))

			Expect(res.Notice).To(ContainSubstring("story-telling"))
			Expect(res.LogChanged).To(BeFalse())
		})

		It("should finalize the tail on streaming_end", func() {
			asm.StartTurn(chat.NewUserMessage("Hi"))
			asm.Apply(decode(`{"type":"assistance_response_chunk","content":"partial"}`))
			asm.Apply(decode(`{"type":"streaming_end"}`))

			Expect(asm.TailState()).To(Equal(stream.TailFinalized))
			Expect(asm.Loading()).To(BeTrue())
		})

		It("should remember the server's model and agent", func() {
			asm.Apply(decode(`{"type":"session_init","current_model":"gpt-oss-120b","current_agent":"tafseer"}`))

			Expect(asm.ServerModel()).To(Equal("gpt-oss-120b"))
			Expect(asm.ServerAgent()).To(Equal("tafseer"))
		})

		It("should clear the log when the server moves to another session", func() {
			asm.SetSession("abc")
			asm.StartTurn(chat.NewUserMessage("Hi"))

			res := asm.Apply(decode(`{"type":"session_id","session_id":"xyz"}`))

			Expect(res.SessionChanged).To(BeTrue())
			Expect(asm.SessionID()).To(Equal("xyz"))
			Expect(asm.Messages()).To(BeEmpty())
			Expect(asm.Loading()).To(BeTrue())
			Expect(res.Completed).To(BeFalse())
			Expect(completed).To(BeEmpty())
		})

		It("should keep streaming into the new session after a mid-turn switch", func() {
			asm.SetSession("abc")
			asm.StartTurn(chat.NewUserMessage("Hi"))
			asm.Apply(decode(`{"type":"session_id","session_id":"xyz"}`))

			asm.Apply(decode(`{"stream_event":"token","delta":"Salam"}`))
			res := asm.Apply(decode(`{"stream_event":"run_complete"}`))

			Expect(res.Completed).To(BeTrue())
			Expect(completed).To(Equal([]string{"Salam"}))
			Expect(asm.Messages()).To(Equal([]chat.Message{chat.NewAssistantMessage("Salam")}))
		})

		It("should keep the log when the session is unchanged", func() {
			asm.SetSession("abc")
			asm.StartTurn(chat.NewUserMessage("Hi"))

			res := asm.Apply(decode(`{"type":"session_id","session_id":"abc"}`))

			Expect(res.SessionChanged).To(BeFalse())
			Expect(asm.Messages()).To(HaveLen(2))
		})

		It("should replace history records from a chat-history frame", func() {
			asm.Apply(decode(`{"type":"chat-history","chat_history":[{"session_id":"s1","title":"Al-Fatiha","description":null,"date":"2025-01-01"}]}`))

			records := asm.Records()
			Expect(records).To(HaveLen(1))
			Expect(records[0].SessionID).To(Equal("s1"))
			Expect(records[0].Description).To(BeEmpty())
		})

		It("should keep the current records when chat-history is null or empty", func() {
			before := asm.Records()
			Expect(before).NotTo(BeEmpty())

			asm.Apply(decode(`{"type":"chat-history","chat_history":null}`))
			Expect(asm.Records()).To(Equal(before))

			asm.Apply(decode(`{"type":"chat-history","chat_history":[]}`))
			Expect(asm.Records()).To(Equal(before))

			asm.Apply(decode(`{"type":"chat-history"}`))
			Expect(asm.Records()).To(Equal(before))
		})

		It("should keep the current records when chat-history does not parse", func() {
			before := asm.Records()
			asm.Apply(decode(`{"type":"chat-history","chat_history":"not records"}`))

			Expect(asm.Records()).To(Equal(before))
		})
	})

	Describe("Reset", func() {
		It("should clear the log but keep the model", func() {
			asm.StartTurn(chat.NewUserMessage("Hi"))
			asm.Reset()

			Expect(asm.Messages()).To(BeEmpty())
			Expect(asm.Conversation().Model).To(Equal(chat.DefaultModel))
			Expect(asm.TailState()).To(Equal(stream.TailAbsent))
		})
	})
})
