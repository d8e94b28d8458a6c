package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkgerrors "github.com/turtacn/molsketch/pkg/errors"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		detail  string
	}{
		{
			name:  "valid",
			input: `{"nodes":[{"id":1,"atom":"N","x":1.5,"y":2}],"links":[]}`,
		},
		{
			name:  "out of range bond order passes the schema",
			input: `{"nodes":[{"id":1,"atom":"C","x":0,"y":0},{"id":2,"atom":"C","x":1,"y":0}],"links":[{"id":3,"source":1,"target":2,"bond":7}]}`,
		},
		{
			name:    "not json",
			input:   `{"nodes":`,
			wantErr: true,
		},
		{
			name:    "missing links",
			input:   `{"nodes":[]}`,
			wantErr: true,
			detail:  "links",
		},
		{
			name:    "unknown element",
			input:   `{"nodes":[{"id":1,"atom":"Xx","x":0,"y":0}],"links":[]}`,
			wantErr: true,
			detail:  "atom",
		},
		{
			name:    "lowercase element",
			input:   `{"nodes":[{"id":1,"atom":"c","x":0,"y":0}],"links":[]}`,
			wantErr: true,
		},
		{
			name:    "fractional id",
			input:   `{"nodes":[{"id":1.5,"atom":"C","x":0,"y":0}],"links":[]}`,
			wantErr: true,
		},
		{
			name:    "missing coordinate",
			input:   `{"nodes":[{"id":1,"atom":"C","x":0}],"links":[]}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeDocument([]byte(tt.input))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotNil(t, doc.Nodes)
				return
			}
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeInvalidDocument))
			if tt.detail != "" {
				assert.Contains(t, err.Error(), tt.detail)
			}
		})
	}
}

func TestDecodeDocument_AllPaletteElementsAccepted(t *testing.T) {
	for _, sym := range []string{"C", "N", "O", "S", "P", "F", "Cl", "Br", "I", "H"} {
		_, err := DecodeDocument([]byte(`{"nodes":[{"id":1,"atom":"` + sym + `","x":0,"y":0}],"links":[]}`))
		assert.NoError(t, err, sym)
	}
}

//Personal.AI order the ending
