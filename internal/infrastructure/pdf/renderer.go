// Package pdf renders the dashboard exports: a single-submission sheet and the full report.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"

	adminapp "github.com/alcymedia/casting-caly/api/internal/admin/application"
	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
)

const (
	marginLeft      = 20.0
	textWidth       = 170.0
	photoWidth      = 80.0
	photoMaxHeight  = 100.0
	pageBottom      = 270.0
	reportBreakAt   = 250.0
	continuationTop = 30.0

	fontFamily = "Helvetica"
)

// Config configures the renderer.
type Config struct {
	// Location is used to render submission timestamps.
	Location *time.Location
	// Uncompressed disables stream compression.
	Uncompressed bool
	Logger       *slog.Logger
}

// Renderer builds PDF documents with fpdf.
type Renderer struct {
	loc          *time.Location
	uncompressed bool
	logger       *slog.Logger
}

func NewRenderer(cfg Config) *Renderer {
	r := &Renderer{loc: cfg.Location, uncompressed: cfg.Uncompressed, logger: cfg.Logger}
	if r.loc == nil {
		r.loc = time.UTC
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *Renderer) newDocument(withFooter bool) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!r.uncompressed)
	pdf.SetAutoPageBreak(false, 0)
	doc := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if withFooter {
		pdf.SetFooterFunc(func() {
			pdf.SetFont(fontFamily, "I", 10)
			doc.text(280, "Casting Caly II - Filme de Ação Moçambicano")
			doc.text(290, "Diretor: Alcy Caluamba")
		})
	}
	pdf.AddPage()
	return doc
}

func (d *document) text(y float64, s string) {
	d.pdf.Text(marginLeft, y, d.tr(s))
}

func (d *document) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Submission renders one applicant. Photos are fetched and placed one after the
// other; a photo that cannot be read or decoded becomes an error line.
func (r *Renderer) Submission(ctx context.Context, s admindomain.Submission, blobs adminapp.BlobReader) ([]byte, error) {
	doc := r.newDocument(true)
	pdf := doc.pdf

	pdf.SetFont(fontFamily, "B", 20)
	doc.text(30, "CASTING CALY II - INSCRIÇÃO")

	pdf.SetFont(fontFamily, "", 12)
	const lineHeight = 8.0
	y := 50.0
	for _, line := range []string{
		"Nome: " + s.FullName,
		fmt.Sprintf("Idade: %d anos", s.Age),
		"Sexo: " + s.Gender,
		"Telefone: " + s.Phone,
		"Província: " + s.Province,
		"Perfil: " + s.ProfileType,
		"Data de Inscrição: " + admindomain.DisplayTime(s.CreatedAt.In(r.loc)),
	} {
		doc.text(y, line)
		y += lineHeight
	}
	y += lineHeight

	pdf.SetFont(fontFamily, "B", 12)
	doc.text(y, "Motivação:")
	y += lineHeight

	pdf.SetFont(fontFamily, "", 12)
	lineStep := pdf.PointConvert(12 * 1.15)
	for _, line := range pdf.SplitLines([]byte(doc.tr(s.Motivation)), textWidth) {
		if y > pageBottom {
			pdf.AddPage()
			y = continuationTop
		}
		pdf.Text(marginLeft, y, string(line))
		y += lineStep
	}
	y += 10

	pdf.SetFont(fontFamily, "B", 12)
	doc.text(y, fmt.Sprintf("Fotos anexadas: %d", len(s.Photos)))
	y += lineHeight
	if s.HasCV() {
		doc.text(y, "CV/Portfólio: Anexado")
		y += lineHeight
	}

	if blobs != nil && len(s.Photos) > 0 {
		y += 4
		for i, path := range s.Photos {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			y = r.placePhoto(ctx, doc, blobs, i, path, y)
		}
	}

	return doc.output()
}

func (r *Renderer) placePhoto(ctx context.Context, doc *document, blobs adminapp.BlobReader, index int, path string, y float64) float64 {
	pdf := doc.pdf
	img, err := r.fetchPhoto(ctx, blobs, path)
	if err != nil {
		r.logger.Warn("photo skipped in pdf export", "path", path, "err", err)
		if y+8 > pageBottom {
			pdf.AddPage()
			y = continuationTop
		}
		pdf.SetFont(fontFamily, "", 10)
		doc.text(y, fmt.Sprintf("Foto %d: erro ao carregar a imagem", index+1))
		return y + 8
	}

	w := photoWidth
	h := w * float64(img.height) / float64(img.width)
	if h > photoMaxHeight {
		h = photoMaxHeight
		w = h * float64(img.width) / float64(img.height)
	}
	if y+h > pageBottom {
		pdf.AddPage()
		y = continuationTop
	}

	name := fmt.Sprintf("photo-%d", index)
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
	pdf.ImageOptions(name, marginLeft, y, w, h, false, opts, 0, "")
	return y + h + 6
}

func (r *Renderer) fetchPhoto(ctx context.Context, blobs adminapp.BlobReader, path string) (*embeddableImage, error) {
	rc, err := blobs.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return toEmbeddable(rc)
}

// Report renders the summary of every submission, one block each.
func (r *Renderer) Report(ctx context.Context, submissions []admindomain.Submission, generatedAt time.Time) ([]byte, error) {
	doc := r.newDocument(false)
	pdf := doc.pdf

	pdf.SetFont(fontFamily, "B", 20)
	doc.text(30, "CASTING CALY II - RELATÓRIO COMPLETO")

	pdf.SetFont(fontFamily, "", 12)
	doc.text(50, fmt.Sprintf("Total de inscrições: %d", len(submissions)))
	doc.text(60, "Relatório gerado em: "+admindomain.DisplayTime(generatedAt))

	const lineHeight = 6.0
	y := 80.0
	for i, s := range submissions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if y > reportBreakAt {
			pdf.AddPage()
			y = continuationTop
		}

		pdf.SetFont(fontFamily, "B", 12)
		doc.text(y, fmt.Sprintf("%d. %s", i+1, s.FullName))
		y += lineHeight

		pdf.SetFont(fontFamily, "", 12)
		doc.text(y, fmt.Sprintf("   Idade: %d | Sexo: %s | Província: %s", s.Age, s.Gender, s.Province))
		y += lineHeight
		doc.text(y, "   Telefone: "+s.Phone)
		y += lineHeight
		doc.text(y, "   Inscrição: "+admindomain.DisplayDate(s.CreatedAt.In(r.loc)))
		y += lineHeight * 2
	}

	return doc.output()
}
