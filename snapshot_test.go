package polycut

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperfold/polycut/cga"
	"github.com/hyperfold/polycut/persist"
)

func TestShapeSnapshotRoundTrip(t *testing.T) {
	sb := buildCube(t, 3)
	for ax := uint8(0); ax < 3; ax++ {
		require.NoError(t, sb.SlicePlane(cga.UnitVector(ax), 0))
	}
	require.Equal(t, 8, sb.PieceCount())

	var buf bytes.Buffer
	require.NoError(t, sb.Save(&buf))

	restored, err := LoadShapeBuilder[string](&buf, WithChecks())
	require.NoError(t, err)

	assert.Equal(t, sb.Stats(), restored.Stats())
	assert.Equal(t, sb.Pieces(), restored.Pieces())

	t.Run("restored builder keeps cutting", func(t *testing.T) {
		require.NoError(t, restored.SlicePlane(cga.UnitVector(0), 0.5))
		assert.Equal(t, 12, restored.PieceCount())
		assert.Equal(t, 8, sb.PieceCount(), "original untouched")
	})

	t.Run("point location agrees", func(t *testing.T) {
		point := cga.FinitePoint(cga.NewVector(0.5, 0.5, 0.5))
		a, ok := sb.PieceContaining(point)
		require.True(t, ok)
		b, ok := restored.PieceContaining(point)
		require.True(t, ok)
		assert.Equal(t, a.Stickers, b.Stickers)
	})
}

func TestShapeSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.pcs")
	sb := buildCube(t, 2, WithSnapshotPath(path), WithPersistOptions(func(o *persist.Options) {
		o.Compression = persist.CompressionLZ4
	}))
	require.NoError(t, sb.SaveFile(""))

	restored, err := LoadShapeBuilderFile[string](path)
	require.NoError(t, err)
	assert.Equal(t, sb.Pieces(), restored.Pieces())

	t.Run("no path configured", func(t *testing.T) {
		plain := buildCube(t, 2)
		require.ErrorIs(t, plain.SaveFile(""), ErrSnapshot)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadShapeBuilderFile[string](filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestShapeSnapshotValidation(t *testing.T) {
	sb := buildCube(t, 2)

	corrupt := func(t *testing.T, mutate func(*shapeState[string])) error {
		t.Helper()
		state := sb.stateLocked()
		mutate(&state)
		var buf bytes.Buffer
		require.NoError(t, persist.Save(&buf, state))
		_, err := LoadShapeBuilder[string](&buf)
		return err
	}

	t.Run("piece polytope out of range", func(t *testing.T) {
		err := corrupt(t, func(s *shapeState[string]) { s.Pieces[0].Polytope = 999 })
		assert.ErrorIs(t, err, ErrSnapshot)
	})
	t.Run("sticker facet out of range", func(t *testing.T) {
		err := corrupt(t, func(s *shapeState[string]) {
			s.Pieces[len(s.Pieces)-1].Stickers = []Sticker[string]{{Facet: 999, Label: "x"}}
		})
		assert.ErrorIs(t, err, ErrSnapshot)
	})
	t.Run("cut result out of range", func(t *testing.T) {
		err := corrupt(t, func(s *shapeState[string]) { s.Pieces[0].CutResult = []uint32{999} })
		assert.ErrorIs(t, err, ErrSnapshot)
	})
	t.Run("active piece out of range", func(t *testing.T) {
		err := corrupt(t, func(s *shapeState[string]) { s.Active = []uint32{999} })
		assert.ErrorIs(t, err, ErrSnapshot)
	})
	t.Run("no pieces", func(t *testing.T) {
		err := corrupt(t, func(s *shapeState[string]) { s.Pieces = nil })
		assert.ErrorIs(t, err, ErrSnapshot)
	})
	t.Run("garbage input", func(t *testing.T) {
		_, err := LoadShapeBuilder[string](strings.NewReader("not a snapshot"))
		assert.Error(t, err)
	})
}

func TestShapeSnapshotMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	sb := buildCube(t, 2, WithMetricsCollector(metrics))

	var buf bytes.Buffer
	require.NoError(t, sb.Save(&buf))
	_, err := LoadShapeBuilder[string](bytes.NewReader(buf.Bytes()), WithMetricsCollector(metrics))
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.EqualValues(t, 1, stats.SnapshotCount)
	assert.EqualValues(t, 0, stats.SnapshotErrors)
	assert.EqualValues(t, 1, stats.RestoreCount)
}
