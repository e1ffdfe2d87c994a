package persist

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	NDim   uint8
	Names  []string
	Coefs  []float64
	Counts map[string]int
}

func testPayload() payload {
	return payload{
		NDim:   3,
		Names:  []string{"sphere", "plane", "plane", "plane"},
		Coefs:  []float64{1, -0.5, 0.0001, 2e9},
		Counts: map[string]int{"manifolds": 4, "polytopes": 9},
	}
}

func TestRoundTrip(t *testing.T) {
	codecs := []Codec{Gob{}, JSON{}}
	compressions := []Compression{CompressionNone, CompressionLZ4, CompressionZstd}

	for _, c := range codecs {
		for _, comp := range compressions {
			t.Run(c.Name()+"/"+comp.String(), func(t *testing.T) {
				var buf bytes.Buffer
				err := Save(&buf, testPayload(), func(o *Options) {
					o.Codec = c
					o.Compression = comp
				})
				require.NoError(t, err)

				var got payload
				require.NoError(t, Load(&buf, &got))
				assert.Equal(t, testPayload(), got)
			})
		}
	}
}

func TestLoadSelectsCodecFromHeader(t *testing.T) {
	var buf bytes.Buffer
	err := Save(&buf, testPayload(), func(o *Options) {
		o.Codec = JSON{}
	})
	require.NoError(t, err)

	// Load does not take a codec; the header names it.
	var got payload
	require.NoError(t, Load(&buf, &got))
	assert.Equal(t, testPayload(), got)
}

func TestIncompressiblePayloadStoredVerbatim(t *testing.T) {
	// A tiny payload cannot shrink; the block must fall back to verbatim
	// storage rather than grow.
	var buf bytes.Buffer
	err := Save(&buf, uint8(7), func(o *Options) {
		o.Compression = CompressionLZ4
	})
	require.NoError(t, err)

	var got uint8
	require.NoError(t, Load(&buf, &got))
	assert.Equal(t, uint8(7), got)
}

func TestLoadRejectsCorruptInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testPayload()))
	data := buf.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte("XXXX"), data[4:]...)},
		{"truncated header", data[:6]},
		{"bad version", func() []byte {
			d := append([]byte(nil), data...)
			d[4] = 0xff
			return d
		}()},
		{"bad compression", func() []byte {
			d := append([]byte(nil), data...)
			d[6] = 0xff
			return d
		}()},
		{"truncated payload", data[:len(data)-5]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := Load(bytes.NewReader(tt.data), &got)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}

	t.Run("unknown codec name", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Save(&buf, testPayload()))
		d := buf.Bytes()
		// The codec name starts at offset 8.
		copy(d[8:], strings.Repeat("?", int(d[7])))
		var got payload
		err := Load(bytes.NewReader(d), &got)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "space.snap")
	require.NoError(t, SaveFile(path, testPayload()))

	var got payload
	require.NoError(t, LoadFile(path, &got))
	assert.Equal(t, testPayload(), got)

	t.Run("overwrite is atomic", func(t *testing.T) {
		other := testPayload()
		other.NDim = 4
		require.NoError(t, SaveFile(path, other))
		var got payload
		require.NoError(t, LoadFile(path, &got))
		assert.Equal(t, uint8(4), got.NDim)
	})

	t.Run("missing file", func(t *testing.T) {
		var got payload
		assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "nope"), &got))
	})
}
