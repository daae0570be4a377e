package controllers

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/killallgit/tadabbur/pkg/chat"
)

type HistoryController struct {
	records []chat.ChatRecord
}

func NewHistoryController(records []chat.ChatRecord) *HistoryController {
	return &HistoryController{records: records}
}

// ListHistory writes the chat history records as a table.
func (hc *HistoryController) ListHistory(writer io.Writer) error {
	if len(hc.records) == 0 {
		_, err := fmt.Fprintln(writer, "No previous chats")
		return err
	}

	tw := newTable(writer)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 40},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 60},
		{Number: 4, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{"Session ID", "Title", "Description", "Date"})

	for _, r := range hc.records {
		tw.AppendRow(table.Row{orDash(r.SessionID), orDash(r.Title), orDash(r.Description), orDash(r.Date)})
	}

	tw.Render()
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
