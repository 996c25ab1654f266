package report

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// VerifyFile checks that the generated report is a structurally valid PDF
// with at least one page.
func VerifyFile(path string) error {
	conf := model.NewDefaultConfiguration()
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return fmt.Errorf("counting pages of %s: %w", path, err)
	}
	if pages < 1 {
		return fmt.Errorf("%s: document has no pages", path)
	}
	return nil
}
