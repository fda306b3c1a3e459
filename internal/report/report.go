// Package report renders a completed loading run to human-facing
// formats: a PDF load plan, an XLSX manifest, a QR tag per ULD, and a
// DXF floor outline. None of these are read back by the engine; they
// are downstream consumers of a validated result.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"

	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
	"github.com/airfreight/cargopack/internal/validate"
)

// Page layout constants (A4 landscape, arbitrary drawing units).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
)

// packagesByULD groups loaded packages under their assigned ULD id.
func packagesByULD(packages []*model.Package) map[string][]*model.Package {
	byULD := make(map[string][]*model.Package)
	for _, p := range packages {
		if !p.Loaded() {
			continue
		}
		byULD[p.LoadedULD] = append(byULD[p.LoadedULD], p)
	}
	return byULD
}

// WritePDF renders one page per ULD showing its loaded packages,
// followed by a cost-breakdown summary page.
func WritePDF(w io.Writer, ulds []*model.ULD, packages []*model.Package, verdict validate.Verdict) error {
	if len(ulds) == 0 {
		return fmt.Errorf("report: no ULDs to render")
	}
	byULD := packagesByULD(packages)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, u := range ulds {
		pdf.AddPage()
		renderULDPage(pdf, u, byULD[u.ID])
	}
	pdf.AddPage()
	renderSummaryPage(pdf, ulds, verdict, uuid.New().String())

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: writing PDF: %w", err)
	}
	return nil
}

func renderULDPage(pdf *fpdf.Fpdf, u *model.ULD, loaded []*model.Package) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%d x %d x %d, cap %d)", u.ID, u.L, u.H, u.W, u.WeightCapacity)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, fmt.Sprintf("%d packages loaded", len(loaded)), "", 0, "L", false, 0, "")
	y += 8

	colWidths := []float64{40, 70, 70, 70}
	headers := []string{"Package", "Min corner", "Max corner", "Weight"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range loaded {
		box, ok := p.Box()
		if !ok {
			continue
		}
		max := box.Origin.Add(geometry.Point3{X: box.Size.L, Y: box.Size.H, Z: box.Size.W})
		row := []string{
			p.ID,
			fmt.Sprintf("(%d,%d,%d)", box.Origin.X, box.Origin.Y, box.Origin.Z),
			fmt.Sprintf("(%d,%d,%d)", max.X, max.Y, max.Z),
			fmt.Sprintf("%d", p.Weight),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, ulds []*model.ULD, verdict validate.Verdict, docID string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Loading Summary", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, marginTop+10)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Report ID: "+docID, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+15, pageWidth-marginRight, marginTop+15)

	used := 0
	for _, u := range ulds {
		if u.LoadedCount() > 0 {
			used++
		}
	}

	y := marginTop + 21
	items := []struct {
		label string
		value string
	}{
		{"ULDs used", fmt.Sprintf("%d", used)},
		{"Priority ULD count", fmt.Sprintf("%d", verdict.PriorityULDCount)},
		{"Unloaded economy delay", fmt.Sprintf("%d", verdict.UnloadedEconDelay)},
		{"Total cost", fmt.Sprintf("%d", verdict.Total)},
		{"Valid", fmt.Sprintf("%v", verdict.Valid)},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(70, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		y += 7
	}

	if len(verdict.Errors) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Validation errors", "", 0, "L", false, 0, "")
		y += 7
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, e := range verdict.Errors {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, "- "+e, "", 0, "L", false, 0, "")
			y += 5
		}
	}
}

// WriteXLSX writes a per-package manifest sheet followed by a per-ULD
// summary sheet.
func WriteXLSX(w io.Writer, ulds []*model.ULD, packages []*model.Package, verdict validate.Verdict) error {
	f := excelize.NewFile()
	defer f.Close()

	const manifestSheet = "Manifest"
	f.SetSheetName("Sheet1", manifestSheet)
	headers := []string{"Package", "ULD", "X0", "Y0", "Z0", "X1", "Y1", "Z1", "Weight"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(manifestSheet, cell, h)
	}
	row := 2
	for _, p := range packages {
		box, ok := p.Box()
		uld := "NONE"
		var x0, y0, z0, x1, y1, z1 int
		if ok {
			uld = p.LoadedULD
			x0, y0, z0 = box.Origin.X, box.Origin.Y, box.Origin.Z
			x1, y1, z1 = x0+box.Size.L, y0+box.Size.H, z0+box.Size.W
		} else {
			x0, y0, z0, x1, y1, z1 = -1, -1, -1, -1, -1, -1
		}
		values := []interface{}{p.ID, uld, x0, y0, z0, x1, y1, z1, p.Weight}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(manifestSheet, cell, v)
		}
		row++
	}

	const summarySheet = "Summary"
	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		return fmt.Errorf("report: creating summary sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.SetCellValue(summarySheet, "A1", "ULD")
	f.SetCellValue(summarySheet, "B1", "Loaded packages")
	f.SetCellValue(summarySheet, "C1", "Weight capacity")
	for i, u := range ulds {
		r := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), u.ID)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), u.LoadedCount())
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", r), u.WeightCapacity)
	}
	footer := len(ulds) + 3
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", footer), "Total cost")
	f.SetCellValue(summarySheet, fmt.Sprintf("B%d", footer), verdict.Total)
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", footer+1), "Report ID")
	f.SetCellValue(summarySheet, fmt.Sprintf("B%d", footer+1), uuid.New().String())

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: writing XLSX: %w", err)
	}
	return nil
}

// QRTag encodes a compact per-ULD identification string ("id:L:W:H:cap")
// as a PNG QR code, for a physical tag affixed to the container.
func QRTag(u *model.ULD) ([]byte, error) {
	payload := fmt.Sprintf("%s:%d:%d:%d:%d", u.ID, u.L, u.W, u.H, u.WeightCapacity)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("report: encoding QR tag for %s: %w", u.ID, err)
	}
	return png, nil
}

// WriteDXF renders a single ULD's floor outline as a closed rectangle in
// the XY plane, plus the footprint rectangle of every package loaded
// into it, for a cutting or floor-marking tool.
func WriteDXF(w io.Writer, u *model.ULD, loaded []*model.Package) error {
	d := dxf.NewDrawing()
	d.Line(0, 0, 0, float64(u.L), 0, 0)
	d.Line(float64(u.L), 0, 0, float64(u.L), float64(u.W), 0)
	d.Line(float64(u.L), float64(u.W), 0, 0, float64(u.W), 0)
	d.Line(0, float64(u.W), 0, 0, 0, 0)

	for _, p := range loaded {
		box, ok := p.Box()
		if !ok {
			continue
		}
		x0, z0 := float64(box.Origin.X), float64(box.Origin.Z)
		x1, z1 := x0+float64(box.Size.L), z0+float64(box.Size.W)
		d.Line(x0, z0, 0, x1, z0, 0)
		d.Line(x1, z0, 0, x1, z1, 0)
		d.Line(x1, z1, 0, x0, z1, 0)
		d.Line(x0, z1, 0, x0, z0, 0)
	}

	tmp, err := os.CreateTemp("", "cargopack-*.dxf")
	if err != nil {
		return fmt.Errorf("report: creating temporary DXF file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := d.SaveAs(tmpPath); err != nil {
		return fmt.Errorf("report: saving DXF drawing: %w", err)
	}
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("report: reading back DXF output: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("report: writing DXF bytes: %w", err)
	}
	return nil
}
