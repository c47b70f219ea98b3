package documents

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os/exec"
	"time"

	"order_desk/internal/domain/entities"
	"order_desk/internal/usecase/interfaces"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

const breakdownHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.OrderName}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; margin: 0; padding: 12mm; }
  h1 { font-size: 18px; margin: 0 0 8px; }
  .info { width: 100%; margin-bottom: 10px; }
  .info td { padding: 2px 6px 2px 0; vertical-align: top; }
  .info td.label { font-weight: bold; white-space: nowrap; }
  .address { white-space: pre-line; }
  .note { font-style: italic; margin: 8px 0 12px; }
  table.lines { width: 100%; border-collapse: collapse; }
  table.lines th, table.lines td { border: 1px solid #999; padding: 4px; }
  table.lines th { background: #eee; }
  td.num { text-align: right; white-space: nowrap; }
  td.img img { max-width: 48px; max-height: 48px; }
  tr.rejected td { color: #a00; }
  tr.total td { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table class="info">
  <tr><td class="label">Customer Name</td><td>{{.CustomerName}}</td><td class="label">Order Name</td><td>{{.OrderName}}</td></tr>
  <tr><td class="label">Email</td><td>{{.CustomerEmail}}</td><td class="label">Order ID</td><td>{{.OrderID}}</td></tr>
  <tr><td class="label">Phone</td><td>{{.CustomerPhone}}</td><td class="label">Order Date</td><td>{{.OrderDate}}</td></tr>
  <tr><td class="label">Address</td><td class="address">{{.Address}}</td><td class="label">Sales Person</td><td>{{.SalesPerson}}</td></tr>
</table>
<div class="note">{{.Note}}</div>
<table class="lines">
  <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>
  {{range .Rows}}
    <tr{{if .Rejected}} class="rejected"{{end}}>
      <td class="img">{{if .Image}}<img src="{{.Image}}">{{end}}</td>
      <td>{{.Title}}</td>
      <td class="num">{{.UnitPrice}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{.TotalPrice}}</td>
      <td>{{.Discount}}</td>
      <td class="num">{{.FinalPrice}}</td>
    </tr>
  {{end}}
    <tr class="total">
      <td colspan="3">Total</td>
      <td class="num">{{.TotalQuantity}}</td>
      <td></td>
      <td></td>
      <td class="num">{{.TotalFinalPrice}}</td>
    </tr>
  </tbody>
</table>
</body>
</html>`

var breakdownTemplate = template.Must(template.New("breakdown").Parse(breakdownHTML))

type pdfRow struct {
	Image      template.URL
	Title      string
	UnitPrice  string
	Quantity   int
	TotalPrice string
	Discount   string
	FinalPrice string
	Rejected   bool
}

type pdfPage struct {
	entities.PriceBreakdown
	Title           string
	Headers         []string
	Rows            []pdfRow
	TotalFinalPrice string
}

type PDFOptions struct {
	ChromePath string
	Timeout    time.Duration
	Images     ImageSource
}

// PDFRenderer prints the breakdown through headless Chrome.
type PDFRenderer struct {
	opts PDFOptions
}

var _ interfaces.IDocumentRenderer = (*PDFRenderer)(nil)

func NewPDFRenderer(opts PDFOptions) *PDFRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.ChromePath == "" {
		opts.ChromePath = detectChromePath()
	}
	return &PDFRenderer{opts: opts}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return "pdf" }

func (r *PDFRenderer) Render(ctx context.Context, b entities.PriceBreakdown) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	html, err := r.HTML(ctx, b)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // containers
		chromedp.DisableGPU,
	)
	if r.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ChromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait, margins are in the page CSS
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	log.Debugf("[desk][documents] pdf rendered order=%s bytes=%d", b.OrderName, len(pdfBuf))
	return pdfBuf, nil
}

// HTML renders the page Chrome prints. Line images are inlined as data URIs so the
// browser never touches the network.
func (r *PDFRenderer) HTML(ctx context.Context, b entities.PriceBreakdown) (string, error) {
	images := lineImages(ctx, r.opts.Images, b.Lines)
	p := pdfPage{
		PriceBreakdown:  b,
		Title:           sheetTitle,
		Headers:         tableHeaders,
		Rows:            make([]pdfRow, 0, len(b.Lines)),
		TotalFinalPrice: money(b.TotalFinalPrice),
	}
	for i, l := range b.Lines {
		row := pdfRow{
			Title:      l.Title,
			UnitPrice:  money(l.UnitPrice),
			Quantity:   l.Quantity,
			TotalPrice: money(l.TotalPrice),
			Discount:   l.DiscountText,
			FinalPrice: finalPriceText(l),
			Rejected:   l.Rejected,
		}
		if data, ok := images[i]; ok {
			row.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
		}
		p.Rows = append(p.Rows, row)
	}

	var buf bytes.Buffer
	if err := breakdownTemplate.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to render breakdown html: %w", err)
	}
	return buf.String(), nil
}

func detectChromePath() string {
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
