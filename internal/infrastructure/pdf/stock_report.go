// Package pdf genera el reporte de existencias en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: "Reporte de existencias" │ fecha + usuario         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Cantidad | Unidad | Últ. cambio      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos activos                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

var _ usecase.StockReportGenerator = (*MarotoStockReport)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoStockReport implementa usecase.StockReportGenerator usando Maroto v2.
type MarotoStockReport struct {
	title string
}

// NewMarotoStockReport construye el generador; title aparece en la cabecera y en los metadatos.
func NewMarotoStockReport(title string) *MarotoStockReport {
	return &MarotoStockReport{title: title}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) GenerateStockReport(
	_ context.Context,
	products []*entity.Product,
	generatedBy string,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		WithAuthor(generatedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedBy, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(products)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(products)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title, by string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por: "+by, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Left),
		h("Producto", 4, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 1, align.Center),
		h("Última alteración", 4, align.Left),
	)
}

func tableRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.FormatInt(p.ID, 10), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(p.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(p.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(lastChange(p), props.Text{Size: 7, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Productos activos: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		}),
	))
}

// lastChange formatea "usuario · fecha" o "N/A" si el producto nunca se modificó.
func lastChange(p *entity.Product) string {
	if p.LastModifiedBy == nil || p.LastModifiedAt == nil {
		return "N/A"
	}
	return *p.LastModifiedBy + " · " + p.LastModifiedAt.Format("02/01/2006 15:04")
}
