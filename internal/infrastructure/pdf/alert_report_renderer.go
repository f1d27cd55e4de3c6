// Package pdf genera la versión descargable del reporte de alertas de stock
// con Maroto v2: resumen, una tabla por banda de urgencia y las
// recomendaciones al pie.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 127, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.AlertRenderer = (*AlertReportRenderer)(nil)

// AlertReportRenderer implementa report.AlertRenderer usando Maroto v2.
type AlertReportRenderer struct{}

// NewAlertReportRenderer construye el renderizador.
func NewAlertReportRenderer() *AlertReportRenderer { return &AlertReportRenderer{} }

// RenderAlertReport genera el PDF y devuelve sus bytes.
func (g *AlertReportRenderer) RenderAlertReport(rep *dto.AlertReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Alertas de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	addSection(m, "SIN EXISTENCIAS", rep.ZeroStock)
	addSection(m, "NIVEL CRÍTICO", rep.Critical)
	addSection(m, "STOCK BAJO", rep.Low)
	addSection(m, "REABASTECIMIENTO URGENTE", rep.Replenishment)

	if len(rep.Recommendations) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range recommendationRows(rep) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(rep *dto.AlertReport) core.Row {
	title := "REPORTE DE ALERTAS DE STOCK"
	if rep.Degraded {
		title += " (DATOS PARCIALES)"
	}
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func summaryRow(rep *dto.AlertReport) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf(
				"Alertas totales: %d   |   Sin existencias: %d   |   Valor en riesgo: $%s",
				rep.TotalAlerts, rep.OutOfStockCount, rep.ValueAtRisk.StringFixed(2),
			), props.Text{Size: 9, Top: 2}),
		),
	)
}

func addSection(m core.Maroto, title string, items []dto.LedgerResponse) {
	if len(items) == 0 {
		return
	}
	m.AddRows(row.New(9).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
	))
	m.AddRows(tableHeaderRow())
	for _, item := range items {
		m.AddRows(itemRow(item))
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Producto", 5, align.Left),
		h("Categoría", 3, align.Left),
		h("Cantidad", 2, align.Right),
		h("Umbral", 2, align.Right),
	)
}

func itemRow(item dto.LedgerResponse) core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New(nonEmpty(item.ProductName, item.ProductID), props.Text{Size: 8, Top: 1})),
		col.New(3).Add(text.New(item.CategoryName, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", item.Threshold), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func recommendationRows(rep *dto.AlertReport) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New("RECOMENDACIONES", props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}))),
	}
	// Orden fijo de urgencia para que el documento sea reproducible.
	for _, key := range []string{dto.RecommendationUrgent, dto.RecommendationPlanning, dto.RecommendationMonitoring} {
		msg, ok := rep.Recommendations[key]
		if !ok {
			continue
		}
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New(fmt.Sprintf("[%s] %s", key, msg), props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
