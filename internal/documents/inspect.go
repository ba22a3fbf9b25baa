package documents

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// pdfPageCount reads the page count out of a PDF payload. Purely
// informational (telemetry only), so any parse problem reports false rather
// than failing the upload.
func pdfPageCount(payload []byte) (n int, ok bool) {
	defer func() {
		if recover() != nil {
			n, ok = 0, false
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return 0, false
	}
	return reader.NumPage(), true
}
