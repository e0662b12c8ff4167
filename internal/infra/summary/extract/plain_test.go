package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		mimeType string
		want     string
		wantErr  bool
	}{
		{name: "plain text", data: []byte("  hello world \n"), want: "hello world"},
		{name: "empty payload", data: nil, wantErr: true},
		{name: "whitespace only", data: []byte("   \n\t "), wantErr: true},
		{name: "pdf magic bytes", data: []byte("%PDF-1.7 binary"), wantErr: true},
		{name: "pdf mime type", data: []byte("looks like text"), mimeType: "application/PDF", wantErr: true},
		{name: "invalid utf8", data: []byte{0xff, 0xfe, 0x41}, wantErr: true},
	}

	extractor := NewPlainTextExtractor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractor.Extract(context.Background(), tc.data, tc.mimeType)
			if tc.wantErr {
				require.True(t, apperrors.IsCode(err, apperrors.CodeExtractError))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
