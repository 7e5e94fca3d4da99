package invoice

import (
	"fmt"
	"io"
	"os"

	"github.com/MrJamesThe3rd/invoiceqc/internal/encoding"
)

// Load decodes an extractor export of unknown text encoding.
func Load(r io.Reader) ([]RawInvoice, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	return Decode(utf8r)
}

// LoadFile reads and decodes the export stored at path.
func LoadFile(path string) ([]RawInvoice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Load(f)
}
