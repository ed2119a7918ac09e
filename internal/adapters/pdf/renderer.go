// Package pdf renders donation receipts as single page PDF documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

const (
	pageWidth  = 600.0
	pageHeight = 400.0

	fontFamily = "receipt"

	titleSize = 24.0
	lineSize  = 14.0
	lineX     = 50.0
)

// Baselines are given from the bottom edge of the page.
const (
	titleX        = 200.0
	titleBaseline = 350.0

	receiptNoBaseline = 310.0
	donorBaseline     = 280.0
	amountBaseline    = 250.0
	dateBaseline      = 220.0
	orgNameBaseline   = 190.0
	orgAddrBaseline   = 160.0
)

// Renderer implements ports.ReceiptRenderer with a fixed 600x400 layout.
type Renderer struct {
	fontPath string
	org      domain.Organization
}

// NewRenderer creates a renderer. The font file is read on every render so a
// replaced asset takes effect without a restart.
func NewRenderer(fontPath string, org domain.Organization) *Renderer {
	return &Renderer{fontPath: fontPath, org: org}
}

// Render draws the receipt and returns the PDF bytes.
func (r *Renderer) Render(record domain.ReceiptRecord) ([]byte, error) {
	fontBytes, err := LoadFont(r.fontPath)
	if err != nil {
		return nil, err
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(record.IssuedAt)
	doc.SetModificationDate(record.IssuedAt)
	doc.SetTitle("Bağış Makbuzu "+record.ReceiptID, true)
	doc.SetAuthor(r.org.Name, true)

	doc.AddUTF8FontFromBytes(fontFamily, "", fontBytes)
	doc.AddPage()
	doc.SetTextColor(0, 0, 0)

	doc.SetFont(fontFamily, "", titleSize)
	text(doc, titleX, titleBaseline, "Bağış Makbuzu")

	doc.SetFont(fontFamily, "", lineSize)
	for _, line := range []struct {
		baseline float64
		value    string
	}{
		{receiptNoBaseline, "Makbuz No: " + record.ReceiptID},
		{donorBaseline, "Bağış Yapan: " + record.DonorName},
		{amountBaseline, "Bağış Miktarı: " + record.Amount.String() + " TL"},
		{dateBaseline, "Tarih: " + record.Date},
		{orgNameBaseline, "Dernek İsmi: " + r.org.Name},
		{orgAddrBaseline, "Dernek Adresi: " + r.org.Address},
	} {
		text(doc, lineX, line.baseline, line.value)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	return buf.Bytes(), nil
}

// text places s with its baseline measured from the bottom of the page.
func text(doc *fpdf.Fpdf, x, baseline float64, s string) {
	doc.Text(x, pageHeight-baseline, s)
}
