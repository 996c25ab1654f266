// Package report composes the reviewable PDF: one section per task, step
// cards in a two-column grid, annotated screenshots inline.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode"

	"codeberg.org/go-pdf/fpdf"

	"github.com/MeKo-Tech/stepreport/internal/annotate"
	"github.com/MeKo-Tech/stepreport/internal/capture"
	"github.com/MeKo-Tech/stepreport/internal/optimize"
	"github.com/MeKo-Tech/stepreport/internal/resolve"
)

// Layout constants, in points (A4 portrait, 0.5in margins).
const (
	pageMargin     = 36.0  // 0.5 inch
	columnWidth    = 270.0 // 3.75 inch grid column
	cardWidth      = 266.4 // 3.7 inch step card
	imageBoxSize   = 252.0 // 3.5 inch square the screenshot must fit
	prereqKeyWidth = 144.0 // 2 inch
	prereqValWidth = 288.0 // 4 inch

	titleLineHt  = 20.0
	headerLineHt = 14.0
	normalLineHt = 11.0
	stepIDLineHt = 9.0
)

// Composer renders a decoded capture into a PDF file.
type Composer struct {
	Optimizer    *optimize.Optimizer
	Annotator    *annotate.Annotator
	FallbackDirs []string
	logger       *slog.Logger
}

// New returns a Composer with default annotation style and optimizer profile.
func New() *Composer {
	return &Composer{
		Optimizer: optimize.Default(),
		Annotator: annotate.New(),
		logger:    slog.Default(),
	}
}

// WithOptimizer replaces the optimizer profile.
func (c *Composer) WithOptimizer(o *optimize.Optimizer) *Composer {
	c.Optimizer = o
	return c
}

// WithFallbackDirs sets additional image search roots tried after the
// conventional locations.
func (c *Composer) WithFallbackDirs(dirs []string) *Composer {
	c.FallbackDirs = dirs
	return c
}

// WithLogger replaces the logger.
func (c *Composer) WithLogger(l *slog.Logger) *Composer {
	c.logger = l
	return c
}

// Generate reads the capture at jsonPath and writes the PDF report. When
// outputPath is empty a name is derived from the sanitized app name in the
// current working directory. imagesDir optionally points at a directory of
// extracted screenshots and may be empty. Returns the output path.
//
// Per-image failures (missing, undecodable, annotation errors) degrade the
// affected step card and never fail the report. A bad JSON document or a
// document build failure aborts with InputError or RenderError.
func (c *Composer) Generate(jsonPath, outputPath, imagesDir string) (string, error) {
	doc, err := capture.LoadFile(jsonPath)
	if err != nil {
		return "", &InputError{Path: jsonPath, Err: err}
	}

	if outputPath == "" {
		outputPath = DefaultOutputPath(doc.AppName)
	}

	scratch, err := os.MkdirTemp("", "stepreport-")
	if err != nil {
		return "", &RenderError{Err: fmt.Errorf("creating scratch directory: %w", err)}
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			c.logger.Warn("removing scratch directory", "dir", scratch, "error", err)
		}
	}()

	resolver := resolve.New(filepath.Dir(jsonPath), imagesDir, c.FallbackDirs)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	c.renderDocumentHeader(pdf, doc)

	for i, task := range doc.Tasks {
		if i > 0 {
			pdf.AddPage()
		}
		c.renderTask(pdf, &task, i, resolver, scratch)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		// No usable partial output should remain.
		_ = os.Remove(outputPath)
		return "", &RenderError{Err: err}
	}

	c.logger.Info("report generated", "output", outputPath, "tasks", len(doc.Tasks))
	return outputPath, nil
}

// Generate renders a capture using the default Composer. It is the package
// entry point for callers without custom configuration.
func Generate(jsonPath, outputPath, imagesDir string) (string, error) {
	return New().Generate(jsonPath, outputPath, imagesDir)
}

// DefaultOutputPath derives the report filename from the app name, placed in
// the current working directory.
func DefaultOutputPath(appName string) string {
	return filepath.Join(".", SanitizeAppName(appName)+"_tasks_report.pdf")
}

// SanitizeAppName keeps letters, digits, spaces and underscores.
func SanitizeAppName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			out = append(out, r)
		}
	}
	return string(out)
}

func (c *Composer) renderDocumentHeader(pdf *fpdf.Fpdf, doc *capture.Capture) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, titleLineHt, doc.AppName, "", "C", false)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, headerLineHt, "Bundle ID: "+doc.BundleID, "", "C", false)
	pdf.MultiCell(0, headerLineHt, "Version: "+doc.AppVersion, "", "C", false)
	pdf.Ln(24)
}

func (c *Composer) renderTask(pdf *fpdf.Fpdf, task *capture.Task, taskIdx int, resolver *resolve.Resolver, scratch string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, titleLineHt, "Task: "+task.Phrases, "", "C", false)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, titleLineHt, "Task id: "+task.ID, "", "C", false)

	if len(task.Prereqs) > 0 {
		c.renderPrereqTable(pdf, task.Prereqs)
	}

	summary := capture.Summarize(task.Steps)
	c.renderSuccessCondition(pdf, summary)

	cards := c.buildCards(task, taskIdx, resolver, scratch)
	c.renderCardGrid(pdf, cards)
}

func (c *Composer) renderPrereqTable(pdf *fpdf.Fpdf, prereqs []capture.Prereq) {
	writeSmallHeader(pdf, "Prerequisites:")

	_, pageH := pdf.GetPageSize()
	bottom := pageH - pageMargin
	rowHt := normalLineHt + 4

	renderPrereqHeaderRow(pdf)
	setPrereqRowStyle(pdf)
	for _, p := range prereqs {
		// Auto page break is off; long tables break between rows, with the
		// header row repeated.
		if pdf.GetY()+rowHt > bottom {
			pdf.AddPage()
			renderPrereqHeaderRow(pdf)
			setPrereqRowStyle(pdf)
		}
		pdf.CellFormat(prereqKeyWidth, rowHt, p.Key, "1", 0, "L", true, 0, "")
		pdf.CellFormat(prereqValWidth, rowHt, p.Value, "1", 1, "L", true, 0, "")
	}
	pdf.Ln(12)
}

// renderPrereqHeaderRow emits the bold-on-light-grey table header row.
func renderPrereqHeaderRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(211, 211, 211)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetDrawColor(0, 0, 0)
	pdf.CellFormat(prereqKeyWidth, 18, "Key", "1", 0, "L", true, 0, "")
	pdf.CellFormat(prereqValWidth, 18, "Value", "1", 1, "L", true, 0, "")
}

func setPrereqRowStyle(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
}

func (c *Composer) renderSuccessCondition(pdf *fpdf.Fpdf, summary capture.TaskSummary) {
	writeSmallHeader(pdf, "Success Condition:")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	if summary.Found {
		pdf.MultiCell(0, normalLineHt, "Description: "+summary.Description, "", "L", false)
		pdf.MultiCell(0, normalLineHt, "isText: "+capture.FormatBool(summary.IsText), "", "L", false)
	} else {
		pdf.MultiCell(0, normalLineHt, "No success condition found", "", "L", false)
	}
	pdf.Ln(12)
}

// writeSmallHeader renders a dark-blue bold section header.
func writeSmallHeader(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 139)
	pdf.MultiCell(0, headerLineHt, text, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}
