package yamlutil_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/article-prep/pkg/yamlutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestDecode(t *testing.T) {
	var got sample
	err := yamlutil.Decode([]byte("name: Starry Night\ncount: 3\nextra: ignored\n"), &got)
	require.NoError(t, err)
	assert.Equal(t, sample{Name: "Starry Night", Count: 3}, got)
}

func TestDecode_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		target  any
		wantErr error
	}{
		{name: "nil data", data: nil, target: &sample{}, wantErr: yamlutil.ErrEmptyDocument},
		{name: "empty data", data: []byte{}, target: &sample{}, wantErr: yamlutil.ErrEmptyDocument},
		{name: "nil target", data: []byte("name: x"), target: nil, wantErr: yamlutil.ErrNilTarget},
		{
			name:    "oversized",
			data:    []byte("name: " + strings.Repeat("x", yamlutil.MaxDocumentSize)),
			target:  &sample{},
			wantErr: yamlutil.ErrDocumentTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := yamlutil.Decode(tt.data, tt.target)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	err := yamlutil.Decode([]byte("name: [unclosed"), &sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yamlutil:")
}

func TestDecodeStrict_RejectsUnknownKeys(t *testing.T) {
	err := yamlutil.DecodeStrict([]byte("name: x\nextra: y\n"), &sample{})
	assert.Error(t, err)

	var got sample
	require.NoError(t, yamlutil.DecodeStrict([]byte("name: x\n"), &got))
	assert.Equal(t, "x", got.Name)
}

func TestEncode_RoundTripsThroughDecode(t *testing.T) {
	in := sample{Name: "Water Lilies", Count: 2}
	out, err := yamlutil.Encode(in)
	require.NoError(t, err)

	var back sample
	require.NoError(t, yamlutil.Decode(out, &back))
	assert.Equal(t, in, back)
}
