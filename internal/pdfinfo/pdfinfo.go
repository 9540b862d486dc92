// Package pdfinfo inspects uploaded PDF bytes. The library core treats
// the PDF as an opaque blob; this package exists for the UI layer,
// which wants the page count for display and for warning when an
// annotation references pages the PDF does not have.
package pdfinfo

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount returns the number of pages in the PDF data.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("counting pdf pages: %w", err)
	}
	return count, nil
}
