package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/MeKo-Tech/stepreport/internal/annotate"
	"github.com/MeKo-Tech/stepreport/internal/capture"
	"github.com/MeKo-Tech/stepreport/internal/resolve"
	"github.com/MeKo-Tech/stepreport/internal/utils"
)

// stepCard is the fully prepared content of one step cell in the grid.
type stepCard struct {
	Header    string
	StepID    string
	Fields    []capture.Field
	ImagePath string  // empty when the step renders without a screenshot
	ImageW    float64 // display size in points, fitted to imageBoxSize
	ImageH    float64
}

// buildCards prepares a card per step, running the image pipeline
// (resolve, optimize, annotate) for steps that reference a screenshot.
// Scratch names carry the task and step indices: fpdf caches images by path,
// so two steps annotating the same source must never share a path.
func (c *Composer) buildCards(task *capture.Task, taskIdx int, resolver *resolve.Resolver, scratch string) []stepCard {
	cards := make([]stepCard, 0, len(task.Steps))
	for i, step := range task.Steps {
		card := stepCard{
			Header: fmt.Sprintf("Step %d", i+1),
			StepID: "id: " + step.ID,
			Fields: step.DisplayFields(),
		}
		if step.ImageID != "" {
			c.attachImage(&card, &step, resolver, filepath.Join(scratch, fmt.Sprintf("temp_%d_%d_%s.png", taskIdx, i, step.ImageID)))
		}
		cards = append(cards, card)
	}
	return cards
}

// attachImage runs the per-step image pipeline, writing the annotated copy
// to dst. Every failure degrades to the best still-available image, or to no
// image at all; none aborts the report.
func (c *Composer) attachImage(card *stepCard, step *capture.Step, resolver *resolve.Resolver, dst string) {
	src, err := resolver.Resolve(step.ImageID)
	if err != nil {
		if errors.Is(err, resolve.ErrImageNotFound) {
			c.logger.Warn("screenshot not found", "image_id", step.ImageID, "step", step.ID)
		} else {
			c.logger.Warn("resolving screenshot", "image_id", step.ImageID, "error", err)
		}
		return
	}

	best := src
	optimized, err := c.Optimizer.Optimize(src)
	if err != nil {
		c.logger.Debug("optimizing screenshot, using original", "path", src, "error", err)
	} else {
		best = optimized
	}

	boxes, taps, swipes := annotationShapes(step.Action)
	annotated, err := c.Annotator.Annotate(best, boxes, taps, swipes, dst)
	if err != nil {
		c.logger.Warn("annotating screenshot, using unannotated image", "path", best, "error", err)
		annotated = best
	}

	// The unannotated fallback may be a format the document cannot embed.
	if imageTypeForPath(annotated) == "" {
		c.logger.Warn("unsupported image type for embedding, omitting image", "path", annotated)
		return
	}

	w, h, err := utils.ImageDimensions(annotated)
	if err != nil || w == 0 || h == 0 {
		c.logger.Warn("reading screenshot dimensions, omitting image", "path", annotated, "error", err)
		return
	}

	card.ImagePath = annotated
	card.ImageW, card.ImageH = fitImage(w, h, imageBoxSize)
}

// annotationShapes maps an action to its drawable shapes: the target box
// (pixel space), a tap crosshair, or a swipe arrow.
func annotationShapes(a *capture.Action) ([]annotate.BoundingBox, []annotate.Tap, []annotate.Swipe) {
	if a == nil {
		return nil, nil, nil
	}
	var boxes []annotate.BoundingBox
	var taps []annotate.Tap
	var swipes []annotate.Swipe

	if a.Target != nil {
		boxes = append(boxes, annotate.BoundingBox{
			X: a.Target.X, Y: a.Target.Y, Width: a.Target.Width, Height: a.Target.Height,
		})
	}
	switch a.Type {
	case capture.ActionTap:
		taps = append(taps, annotate.Tap{X: a.X, Y: a.Y})
	case capture.ActionSwipe:
		swipes = append(swipes, annotate.Swipe{StartX: a.StartX, StartY: a.StartY, EndX: a.EndX, EndY: a.EndY})
	}
	return boxes, taps, swipes
}

// fitImage scales pixel dimensions down to fit a square box in points,
// preserving aspect ratio. Images already within the box keep natural size.
func fitImage(w, h int, box float64) (float64, float64) {
	fw, fh := float64(w), float64(h)
	scale := min(box/fw, box/fh)
	if scale > 1 {
		scale = 1
	}
	return fw * scale, fh * scale
}

// pairCards arranges cards into two-column grid rows: consecutive cards are
// paired, and an odd final card occupies the left column alone.
func pairCards(cards []stepCard) [][2]*stepCard {
	rows := make([][2]*stepCard, 0, (len(cards)+1)/2)
	for i := 0; i < len(cards); i += 2 {
		var row [2]*stepCard
		row[0] = &cards[i]
		if i+1 < len(cards) {
			row[1] = &cards[i+1]
		}
		rows = append(rows, row)
	}
	return rows
}

// renderCardGrid lays out the cards row by row, breaking to a new page when
// a row does not fit below the current cursor.
func (c *Composer) renderCardGrid(pdf *fpdf.Fpdf, cards []stepCard) {
	_, pageH := pdf.GetPageSize()
	bottom := pageH - pageMargin

	for _, row := range pairCards(cards) {
		rowHt := c.measureCard(pdf, row[0])
		if row[1] != nil {
			if h := c.measureCard(pdf, row[1]); h > rowHt {
				rowHt = h
			}
		}
		y := pdf.GetY()
		if y+rowHt > bottom {
			pdf.AddPage()
			y = pdf.GetY()
		}
		c.renderCard(pdf, row[0], pageMargin, y)
		if row[1] != nil {
			c.renderCard(pdf, row[1], pageMargin+columnWidth, y)
		}
		pdf.SetXY(pageMargin, y+rowHt+10)
	}
}

// measureCard computes a card's rendered height without drawing it.
func (c *Composer) measureCard(pdf *fpdf.Fpdf, card *stepCard) float64 {
	h := headerLineHt + 2 // "Step N" header
	h += stepIDLineHt + 2 // id line
	pdf.SetFont("Helvetica", "B", 9)
	for _, f := range card.Fields {
		lines := pdf.SplitText(f.Label+": "+f.Value, cardWidth)
		h += float64(len(lines)) * normalLineHt
	}
	if card.ImagePath != "" {
		h += card.ImageH + 4
	}
	return h
}

// renderCard draws a single card with its top-left corner at (x, y).
func (c *Composer) renderCard(pdf *fpdf.Fpdf, card *stepCard, x, y float64) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 139)
	pdf.CellFormat(cardWidth, headerLineHt, card.Header, "", 0, "L", false, 0, "")
	y += headerLineHt + 2

	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(cardWidth, stepIDLineHt, card.StepID, "", 0, "L", false, 0, "")
	y += stepIDLineHt + 2

	for _, f := range card.Fields {
		y = writeLabeled(pdf, x, y, cardWidth, f.Label, f.Value)
	}

	if card.ImagePath != "" {
		opts := fpdf.ImageOptions{ImageType: imageTypeForPath(card.ImagePath)}
		pdf.ImageOptions(card.ImagePath, x, y+2, card.ImageW, card.ImageH, false, opts, 0, "")
	}
}

// writeLabeled renders "Label: value" with a bold label, wrapped inside the
// card column, and returns the y position below the text.
func writeLabeled(pdf *fpdf.Fpdf, x, y, w float64, label, value string) float64 {
	pageW, _ := pdf.GetPageSize()
	left, top, right, _ := pdf.GetMargins()
	pdf.SetLeftMargin(x)
	pdf.SetRightMargin(pageW - x - w)

	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Write(normalLineHt, label+": ")
	pdf.SetFont("Helvetica", "", 9)
	pdf.Write(normalLineHt, value)
	endY := pdf.GetY() + normalLineHt

	pdf.SetMargins(left, top, right)
	return endY
}

// imageTypeForPath maps a file extension to the fpdf image type tag.
func imageTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPEG"
	case ".png":
		return "PNG"
	default:
		return ""
	}
}
