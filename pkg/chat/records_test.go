package chat_test

import (
	"errors"

	"github.com/killallgit/tadabbur/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Fixtures", func() {
	Describe("DefaultRecords", func() {
		It("should load the bundled history", func() {
			records := chat.DefaultRecords()

			Expect(records).To(HaveLen(8))
			Expect(records[0].SessionID).To(Equal("a162542"))
			Expect(records[0].Title).To(Equal("Surah Baqarah Tafseer"))
			Expect(records[0].Date).To(Equal("Sep, 2002"))
		})

		It("should find a record by session id", func() {
			rec, ok := chat.FindRecord(chat.DefaultRecords(), "u918233")
			Expect(ok).To(BeTrue())
			Expect(rec.Title).To(Equal("Surah Yaseen Summary"))

			_, ok = chat.FindRecord(chat.DefaultRecords(), "missing")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ParseRecords", func() {
		It("should decode null fields as empty strings", func() {
			records, err := chat.ParseRecords([]byte(`[{"session_id":"s1","title":null,"description":"d","date":null}]`))

			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].SessionID).To(Equal("s1"))
			Expect(records[0].Title).To(BeEmpty())
		})

		It("should report null and empty payloads as no history", func() {
			for _, raw := range []string{``, `null`, ` null `, `[]`} {
				_, err := chat.ParseRecords([]byte(raw))
				Expect(err).To(MatchError(chat.ErrNoHistory), "payload %q", raw)
			}
		})

		It("should reject non-list payloads", func() {
			_, err := chat.ParseRecords([]byte(`{"session_id":"s1"}`))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ModelCatalog", func() {
		var catalog *chat.ModelCatalog

		BeforeEach(func() {
			catalog = chat.DefaultModelCatalog()
		})

		It("should include the default model", func() {
			m, err := catalog.Find(chat.DefaultModel)
			Expect(err).ToNot(HaveOccurred())
			Expect(m.Provider).To(Equal("Qwen"))
			Expect(m.IsNew).To(BeTrue())
		})

		It("should match names case-insensitively", func() {
			m, err := catalog.Find("Kimi-k2-instruct-0905")
			Expect(err).ToNot(HaveOccurred())
			Expect(m.Name).To(Equal("kimi-k2-instruct-0905"))
		})

		It("should report unknown models", func() {
			_, err := catalog.Find("llama")
			Expect(errors.Is(err, chat.ErrUnknownModel)).To(BeTrue())
		})

		It("should cycle through models", func() {
			models := catalog.Models()
			last := models[len(models)-1]

			Expect(catalog.Next(models[0].Name).Name).To(Equal(models[1].Name))
			Expect(catalog.Next(last.Name).Name).To(Equal(models[0].Name))
		})
	})

	Describe("AgentProfiles", func() {
		It("should resolve known agents", func() {
			p, err := chat.FindAgentProfile("story-telling")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Placeholder).To(Equal("Generate an Islamic story"))
		})

		It("should reject unknown agents", func() {
			_, err := chat.FindAgentProfile("poetry")
			Expect(errors.Is(err, chat.ErrUnknownAgent)).To(BeTrue())
		})

		It("should default to tafseer", func() {
			Expect(chat.DefaultAgentProfile().Name).To(Equal(chat.AgentTafseer))
		})
	})
})
