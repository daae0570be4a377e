package controllers

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/logger"
)

type ModelsController struct {
	catalog *chat.ModelCatalog
}

func NewModelsController(catalog *chat.ModelCatalog) *ModelsController {
	if catalog == nil {
		catalog = chat.DefaultModelCatalog()
	}
	return &ModelsController{
		catalog: catalog,
	}
}

// ListModels writes the catalog as a table, marking the current model.
func (mc *ModelsController) ListModels(writer io.Writer, current string) error {
	models := mc.catalog.Models()
	logger.WithComponent("models_controller").Debugw("Listing models", "model_count", len(models))

	if len(models) == 0 {
		_, err := fmt.Fprintln(writer, "No models found")
		return err
	}

	tw := newTable(writer)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{"", "Name", "Provider", "Parameters", "New"})

	for _, m := range models {
		marker := ""
		if m.Name == current {
			marker = "*"
		}
		isNew := ""
		if m.IsNew {
			isNew = "new"
		}
		tw.AppendRow(table.Row{marker, m.Name, m.Provider, m.Parameters, isNew})
	}

	tw.Render()
	return nil
}

func newTable(writer io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(writer)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true
	return tw
}
