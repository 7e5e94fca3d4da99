package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/invoiceqc/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := `[{"seller_name":"Müller Bürobedarf GmbH","net_total":"1.234,56"}]`
	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// Windows-1252: ü = 0xFC
	latin1 := []byte{'[', '"', 'M', 0xFC, 'l', 'l', 'e', 'r', '"', ']'}
	assert.Equal(t, `["Müller"]`, readAll(t, latin1))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[]`)...)
	assert.Equal(t, "[]", readAll(t, input))
}

func TestNewUTF8Reader_UTF16(t *testing.T) {
	tests := []struct {
		name  string
		order unicode.Endianness
		bom   unicode.BOMPolicy
	}{
		{name: "LE with BOM", order: unicode.LittleEndian, bom: unicode.UseBOM},
		{name: "BE with BOM", order: unicode.BigEndian, bom: unicode.UseBOM},
		{name: "LE without BOM", order: unicode.LittleEndian, bom: unicode.IgnoreBOM},
		{name: "BE without BOM", order: unicode.BigEndian, bom: unicode.IgnoreBOM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := unicode.UTF16(tt.order, tt.bom).NewEncoder().Bytes([]byte(`[{"currency":"EUR"}]`))
			require.NoError(t, err)

			assert.Equal(t, `[{"currency":"EUR"}]`, readAll(t, encoded))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Empty(t, readAll(t, nil))
}
