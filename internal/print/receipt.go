// Package print builds and renders the PDF order receipt mailed to the shop
// owner and served by GET /order/:id/print.
package print

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/FredesVirginia/captus-back/internal/model"
)

// ReceiptItem is one rendered table row. Image holds the already-fetched
// bytes so rendering never does network I/O.
type ReceiptItem struct {
	ItemID         uint
	Nombre         string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
	Image          []byte
	ImageType      string // "JPG" | "PNG"
}

// ReceiptDoc is the fully resolved receipt, ready to render.
type ReceiptDoc struct {
	OrderID uint
	Cliente string
	Phone   int
	Fecha   time.Time
	Total   decimal.Decimal
	Items   []ReceiptItem
}

// Builder resolves an order into a ReceiptDoc, fetching item images over HTTP.
type Builder struct {
	httpClient *http.Client
}

func NewBuilder() *Builder {
	return &Builder{httpClient: &http.Client{Timeout: 15 * time.Second}}
}

// Build assembles the receipt. Image fetches fan out concurrently; the first
// failure cancels the rest and aborts the build.
func (b *Builder) Build(ctx context.Context, order *model.Orden) (*ReceiptDoc, error) {
	doc := &ReceiptDoc{
		OrderID: order.ID,
		Fecha:   order.Fecha,
		Total:   order.Total,
		Items:   make([]ReceiptItem, len(order.Items)),
	}
	if order.User != nil {
		doc.Cliente = order.User.Nombre
		doc.Phone = order.User.Phone
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range order.Items {
		if item.Planta == nil {
			return nil, fmt.Errorf("receipt: order %d item %d has no plant loaded", order.ID, item.ID)
		}

		doc.Items[i] = ReceiptItem{
			ItemID:         item.ID,
			Nombre:         item.Planta.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		}

		i, url := i, item.Planta.ImagenURL
		g.Go(func() error {
			img, kind, err := b.fetchImage(gctx, url)
			if err != nil {
				return err
			}
			doc.Items[i].Image = img
			doc.Items[i].ImageType = kind
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (b *Builder) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: image request %s: %w", url, err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("receipt: image %s returned %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: read image %s: %w", url, err)
	}

	kind := "JPG"
	if strings.Contains(resp.Header.Get("Content-Type"), "png") {
		kind = "PNG"
	}
	return data, kind, nil
}
