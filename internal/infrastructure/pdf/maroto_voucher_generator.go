// Package pdf implementa la generación del comprobante imprimible de los
// documentos de inventario (entrada, salida, traslado y ajuste).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento  │  Referencia + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BODEGA origen (+ destino en traslados)                     │
//	│  TERCERO: proveedor o cliente cuando aplica                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Producto | UdM | Cant | Costo | Subtotal  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / valor total a costo                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/shopspring/decimal"

	appdocs "github.com/jhoicas/Bodega-api/internal/application/documents"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Títulos por tipo de documento.
var docTypeTitles = map[string]string{
	entity.DocTypeRECEIPT:    "COMPROBANTE DE ENTRADA",
	entity.DocTypeDELIVERY:   "COMPROBANTE DE SALIDA",
	entity.DocTypeTRANSFER:   "COMPROBANTE DE TRASLADO",
	entity.DocTypeADJUSTMENT: "COMPROBANTE DE AJUSTE",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoVoucherGenerator implementa documents.VoucherPDFGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateVoucherPDF genera el PDF y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateVoucherPDF(
	_ context.Context,
	doc *entity.Document,
	warehouse *entity.Warehouse,
	toWarehouse *entity.Warehouse,
	contact *entity.Contact,
	lines []appdocs.VoucherLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Inventario", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(bodegaRow(doc, warehouse, toWarehouse))
	if contact != nil {
		m.AddRows(terceroRow(doc, contact))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	// Pie: quién completó y cuándo
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo de documento (izq) y referencia + fecha (der).
func headerRow(doc *entity.Document) core.Row {
	title := docTypeTitles[doc.Type]
	if title == "" {
		title = "COMPROBANTE DE INVENTARIO"
	}
	fecha := doc.CreatedAt.Format("02/01/2006")
	if doc.CompletedAt != nil {
		fecha = doc.CompletedAt.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento aplicado al inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(doc.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// bodegaRow: bodega origen y, en traslados, la bodega destino.
func bodegaRow(doc *entity.Document, warehouse, toWarehouse *entity.Warehouse) core.Row {
	origen := warehouse.Name
	if doc.FromLocation != "" {
		origen += " / " + doc.FromLocation
	}
	if doc.Type == entity.DocTypeRECEIPT && doc.ToLocation != "" {
		origen = warehouse.Name + " / " + doc.ToLocation
	}

	if toWarehouse == nil {
		return row.New(12).Add(
			col.New(12).Add(
				text.New("BODEGA", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(origen, props.Text{Size: 9, Top: 7}),
			),
		)
	}

	destino := toWarehouse.Name
	if doc.ToLocation != "" {
		destino += " / " + doc.ToLocation
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New("BODEGA ORIGEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(origen, props.Text{Size: 9, Top: 7}),
		),
		col.New(6).Add(
			text.New("BODEGA DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(destino, props.Text{Size: 9, Top: 7}),
		),
	)
}

// terceroRow: proveedor (entrada) o cliente (salida).
func terceroRow(doc *entity.Document, contact *entity.Contact) core.Row {
	label := "TERCERO"
	switch doc.Type {
	case entity.DocTypeRECEIPT:
		label = "PROVEEDOR"
	case entity.DocTypeDELIVERY:
		label = "CLIENTE"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(contact.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(contact.TaxID, "—"),
				nonEmpty(contact.Email, "—"),
				nonEmpty(contact.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("UdM", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Costo Unit.", 1, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []appdocs.VoucherLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		subtotal := l.Quantity.Mul(l.UnitCost)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.LineNo),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.ProductSKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.UOM,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				l.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				"$"+formatMoney(l.UnitCost.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(subtotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: unidades movidas y valor total a costo.
func totalsRow(lines []appdocs.VoucherLineForPDF) core.Row {
	totalQty := decimal.Zero
	totalCost := decimal.Zero
	for _, l := range lines {
		totalQty = totalQty.Add(l.Quantity.Abs())
		totalCost = totalCost.Add(l.Quantity.Abs().Mul(l.UnitCost))
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(18).Add(
		col.New(3),
		col.New(3).Add(
			label("Total unidades:"),
			grandLabel("VALOR A COSTO:"),
		),
		col.New(3).Add(
			value(totalQty.StringFixed(0)),
			grandValue("$"+formatMoney(totalCost.StringFixed(0))),
		),
		col.New(3),
	)
}

// footerRow: quién completó el documento y cuándo.
func footerRow(doc *entity.Document) core.Row {
	completado := "—"
	if doc.CompletedAt != nil {
		completado = doc.CompletedAt.Format("02/01/2006 15:04")
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Aprobado por: %s   |   Completado: %s",
				nonEmpty(doc.ValidatedBy, "—"), completado,
			), props.Text{Size: 7, Color: colorGray, Top: 2}),
			text.New("Este comprobante es el soporte interno del movimiento de inventario. Consérvelo.",
				props.Text{Size: 6.5, Color: colorGray, Top: 6}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
