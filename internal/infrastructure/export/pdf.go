package export

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

	"github.com/huseyintonguc/DEPO/internal/domain/entity"
	dominv "github.com/huseyintonguc/DEPO/internal/domain/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFGenerator renders printable report pages with Maroto.
type PDFGenerator struct{}

// NewPDFGenerator builds the generator.
func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

// MovementReportPDF renders a filtered movement report with its totals.
func (g *PDFGenerator) MovementReportPDF(title string, movements []entity.Movement, summary dominv.Summary) ([]byte, error) {
	m := newDocument(title)

	m.AddRows(tableHeader([]int{3, 2, 4, 3}, "Tarih", "İşlem", "Ürün", "Miktar"))
	for _, mov := range movements {
		m.AddRows(row.New(5).Add(
			text.NewCol(3, mov.EffectiveDate.Format("2006-01-02"), cellText()),
			text.NewCol(2, mov.Kind.String(), cellText()),
			text.NewCol(4, mov.ProductCode+" - "+mov.ProductName, cellText()),
			text.NewCol(3, mov.Quantity.String()+" "+mov.Unit, cellRight()),
		))
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(
		summaryRow("Toplam Giriş", summary.TotalIn.String()),
		summaryRow("Toplam Çıkış", summary.TotalOut.String()),
		summaryRow("Net", summary.Net.String()),
	)

	return render(m)
}

// StockReportPDF renders the net-stock view.
func (g *PDFGenerator) StockReportPDF(title string, levels []entity.StockLevel) ([]byte, error) {
	m := newDocument(title)

	m.AddRows(tableHeader([]int{3, 5, 2, 2}, "Ürün Kodu", "Ürün Adı", "Birim", "Net Miktar"))
	for _, lv := range levels {
		m.AddRows(row.New(5).Add(
			text.NewCol(3, lv.ProductCode, cellText()),
			text.NewCol(5, lv.ProductName, cellText()),
			text.NewCol(2, lv.Unit, cellText()),
			text.NewCol(2, lv.NetQuantity.String(), cellRight()),
		))
	}

	return render(m)
}

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(row.New(12).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
		),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	return m
}

func tableHeader(widths []int, labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, text.NewCol(widths[i], label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorGray,
		}))
	}
	return row.New(6).Add(cols...)
}

func summaryRow(label, value string) core.Row {
	return row.New(5).Add(
		text.NewCol(9, label, props.Text{Align: align.Right, Size: 9}),
		text.NewCol(3, value, props.Text{Align: align.Right, Style: fontstyle.Bold, Size: 9}),
	)
}

func cellText() props.Text {
	return props.Text{Size: 8}
}

func cellRight() props.Text {
	return props.Text{Size: 8, Align: align.Right}
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}
