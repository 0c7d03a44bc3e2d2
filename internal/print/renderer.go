package print

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Render rasterizes the receipt into an in-memory PDF:
//   - Header: shop name, "Confirmación de Orden" title, print date
//   - Customer block (nombre, fecha de compra, telefono)
//   - Item table: image, plant name, item id, quantity, unit price, subtotal
//   - Bold right-aligned total
func Render(doc *ReceiptDoc) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Captus", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr("Confirmación de Orden"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, doc.Fecha.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── Customer block ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6,
		tr(fmt.Sprintf("Nombre de Cliente: %s . Fecha de Compra: %s", doc.Cliente, doc.Fecha.Format("02/01/2006"))),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Telefono: + %d", doc.Phone), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Item table ───────────────────────────────────────────────────────────
	colImg := contentW * 0.18
	colNombre := contentW * 0.28
	colID := contentW * 0.10
	colCant := contentW * 0.12
	colPrecio := contentW * 0.16
	colSub := contentW * 0.16

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(238, 238, 238)
	pdf.CellFormat(colImg, 7, "Imagen", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colNombre, 7, "Planta", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colID, 7, "Id", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colCant, 7, "Cantidad", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPrecio, 7, "Precio Unitario", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colSub, 7, "Subtotal", "1", 1, "C", true, 0, "")

	const rowH = 26.0
	pdf.SetFont("Helvetica", "B", 9)
	for _, item := range doc.Items {
		x, y := pdf.GetX(), pdf.GetY()

		pdf.CellFormat(colImg, rowH, "", "1", 0, "C", false, 0, "")
		if len(item.Image) > 0 {
			name := fmt.Sprintf("item-%d", item.ItemID)
			opts := fpdf.ImageOptions{ImageType: item.ImageType}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(item.Image))
			pdf.ImageOptions(name, x+2, y+2, colImg-4, rowH-4, false, opts, 0, "")
		}

		pdf.CellFormat(colNombre, rowH, tr(item.Nombre), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colID, rowH, fmt.Sprintf("%d", item.ItemID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colCant, rowH, fmt.Sprintf("%d", item.Cantidad), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPrecio, rowH, "$"+item.PrecioUnitario.StringFixed(2), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colSub, rowH, "$"+item.Subtotal.StringFixed(2), "1", 1, "C", false, 0, "")
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, "Total: $"+doc.Total.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
