package print

import (
	"context"

	"github.com/FredesVirginia/captus-back/internal/model"
)

// Printer assembles receipt data and renders it as a PDF in one call.
type Printer struct {
	builder *Builder
}

func NewPrinter() *Printer {
	return &Printer{builder: NewBuilder()}
}

func (p *Printer) Print(ctx context.Context, order *model.Orden) ([]byte, error) {
	doc, err := p.builder.Build(ctx, order)
	if err != nil {
		return nil, err
	}
	return Render(doc)
}
