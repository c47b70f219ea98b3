package documents

import (
	"context"
	"fmt"

	"order_desk/internal/domain/entities"
	"order_desk/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	// excelize built-in number format "0.00"
	numFmtMoney = 2

	imageRowHeight = 40
	firstLineRow   = 9
)

// XLSXRenderer writes the breakdown as a single-sheet workbook.
type XLSXRenderer struct {
	images ImageSource
}

var _ interfaces.IDocumentRenderer = (*XLSXRenderer)(nil)

func NewXLSXRenderer(images ImageSource) *XLSXRenderer {
	return &XLSXRenderer{images: images}
}

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Extension() string { return "xlsx" }

// Render puts the title in row 1, the customer and order blocks in rows 2-5, the note
// in row 7 and the table header in row 8. Lines follow, then the totals row.
func (r *XLSXRenderer) Render(ctx context.Context, b entities.PriceBreakdown) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("[desk][documents] close workbook err=%v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetTitle); err != nil {
		return nil, err
	}
	w := sheetWriter{f: f, sheet: sheetTitle}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"EEEEEE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, err
	}
	totalMoney, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, err
	}

	w.set("A1", sheetTitle)
	w.style("A1", "A1", bold)
	info := [][4]string{
		{"Customer Name", b.CustomerName, "Order Name", b.OrderName},
		{"Email", b.CustomerEmail, "Order ID", b.OrderID},
		{"Phone", b.CustomerPhone, "Order Date", b.OrderDate},
		{"Address", b.Address, "Sales Person", b.SalesPerson},
	}
	for i, row := range info {
		n := i + 2
		w.set(cell(1, n), row[0])
		w.set(cell(2, n), row[1])
		w.set(cell(5, n), row[2])
		w.set(cell(6, n), row[3])
		w.style(cell(1, n), cell(1, n), bold)
		w.style(cell(5, n), cell(5, n), bold)
	}
	w.style("B5", "B5", wrap)
	w.merge("A7", "G7")
	w.set("A7", b.Note)
	w.style("A7", "A7", wrap)

	for i, h := range tableHeaders {
		w.set(cell(i+1, firstLineRow-1), h)
	}
	w.style(cell(1, firstLineRow-1), cell(len(tableHeaders), firstLineRow-1), header)

	images := lineImages(ctx, r.images, b.Lines)
	for i, l := range b.Lines {
		n := firstLineRow + i
		w.set(cell(2, n), l.Title)
		w.set(cell(3, n), l.UnitPrice.InexactFloat64())
		w.set(cell(4, n), l.Quantity)
		w.set(cell(5, n), l.TotalPrice.InexactFloat64())
		w.set(cell(6, n), l.DiscountText)
		if l.Rejected {
			w.set(cell(7, n), noPrice)
		} else {
			w.set(cell(7, n), l.FinalPrice.InexactFloat64())
		}
		w.style(cell(3, n), cell(3, n), moneyStyle)
		w.style(cell(5, n), cell(5, n), moneyStyle)
		w.style(cell(7, n), cell(7, n), moneyStyle)
		if data, ok := images[i]; ok {
			w.picture(n, data)
		}
	}

	total := firstLineRow + len(b.Lines)
	w.set(cell(1, total), "Total")
	w.set(cell(4, total), b.TotalQuantity)
	w.set(cell(7, total), b.TotalFinalPrice.InexactFloat64())
	w.style(cell(1, total), cell(6, total), bold)
	w.style(cell(7, total), cell(7, total), totalMoney)

	w.width("A", "A", 10)
	w.width("B", "B", 40)
	w.width("C", "G", 14)

	if w.err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", w.err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	log.Debugf("[desk][documents] xlsx rendered order=%s bytes=%d", b.OrderName, buf.Len())
	return buf.Bytes(), nil
}

// sheetWriter keeps the first excelize error so the layout code reads top to bottom.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(axis string, v any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(w.sheet, axis, v)
	}
}

func (w *sheetWriter) style(from, to string, id int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(w.sheet, from, to, id)
	}
}

func (w *sheetWriter) merge(from, to string) {
	if w.err == nil {
		w.err = w.f.MergeCell(w.sheet, from, to)
	}
}

func (w *sheetWriter) width(from, to string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(w.sheet, from, to, width)
	}
}

func (w *sheetWriter) picture(row int, data []byte) {
	if w.err != nil {
		return
	}
	if w.err = w.f.SetRowHeight(w.sheet, row, imageRowHeight); w.err != nil {
		return
	}
	w.err = w.f.AddPictureFromBytes(w.sheet, cell(1, row), &excelize.Picture{
		Extension: ".png",
		File:      data,
		Format:    &excelize.GraphicOptions{AutoFit: true},
	})
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A1"
	}
	return name
}
