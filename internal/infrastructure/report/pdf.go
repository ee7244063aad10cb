package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"roadscan/config"
	"roadscan/internal/domain/entity"
	"roadscan/internal/domain/port"
)

// PDFGenerator сохраняет отчёт о детекции в PDF-файл.
// Отчёт на английском: стандартные шрифты PDF не содержат кириллицы.
type PDFGenerator struct {
	dir        string
	embedImage bool
}

// NewPDFGenerator создаёт генератор отчётов для каталога из конфигурации.
func NewPDFGenerator(cfg config.ReportsConfig) *PDFGenerator {
	return &PDFGenerator{
		dir:        cfg.Dir,
		embedImage: cfg.EmbedImage,
	}
}

// Generate собирает PDF по записи и пишет его под уникальным именем.
// Имя выводится из времени записи; при совпадении добавляется счётчик.
func (g *PDFGenerator) Generate(record *entity.DetectionRecord) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Road Defect Detection Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.Ln(5)
	pdf.CellFormat(0, 10, "Timestamp: "+record.CreatedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, "Address: "+record.Address, "", 1, "L", false, 0, "")
	if record.Location.Lat != 0 || record.Location.Lng != 0 {
		pdf.CellFormat(0, 10, "Location: "+record.Location.MapsURL(), "", 1, "L", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Detected Defects:", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, line := range summaryLines(record) {
		pdf.CellFormat(0, 10, line, "", 1, "L", false, 0, "")
	}

	if g.embedImage && len(record.Annotated) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader("annotated", opts, bytes.NewReader(record.Annotated))
		pdf.Ln(5)
		pdf.ImageOptions("annotated", 10, pdf.GetY(), 150, 0, false, opts, 0, "")
	}

	f, path, err := g.createUnique(record)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := pdf.Output(f); err != nil {
		// Недописанный файл в каталоге отчётов не оставляем.
		f.Close()
		os.Remove(path)
		return "", &entity.ReportError{Path: path, Err: err}
	}

	return path, nil
}

// createUnique открывает новый файл отчёта, не перезаписывая существующие.
func (g *PDFGenerator) createUnique(record *entity.DetectionRecord) (*os.File, string, error) {
	stamp := record.CreatedAt.Format("20060102_150405")
	for i := 0; ; i++ {
		name := fmt.Sprintf("defect_report_%s.pdf", stamp)
		if i > 0 {
			name = fmt.Sprintf("defect_report_%s_%d.pdf", stamp, i)
		}

		path := filepath.Join(g.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) {
			return nil, "", &entity.ReportError{Path: path, Err: err}
		}
	}
}

// summaryLines форматирует список дефектов для отчёта.
func summaryLines(record *entity.DetectionRecord) []string {
	if !record.HasDefects() {
		return []string{"No defects detected."}
	}

	lines := make([]string, 0, len(record.Detections))
	for _, d := range record.Detections {
		lines = append(lines, "- "+d.String())
	}
	return lines
}

// Проверка реализации интерфейса
var _ port.ReportGenerator = (*PDFGenerator)(nil)
