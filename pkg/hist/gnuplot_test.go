package hist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGnuplot(t *testing.T) {
	h, err := New[float64](0, 4, 2)
	require.NoError(t, err)

	h.Consume(1, nil)
	h.Consume(1.5, nil)
	h.Consume(3, nil)

	var buf bytes.Buffer
	require.NoError(t, h.WriteGnuplot(&buf))

	want := "0 2\n2 2\n2 1\n4 1\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteGnuplotEmpty(t *testing.T) {
	h, err := New[float64](0, 4, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.WriteGnuplot(&buf))

	// Empty bins still trace the full outline at height zero.
	want := "0 0\n2 0\n2 0\n4 0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteGnuplotFractionalEdges(t *testing.T) {
	h, err := New[float64](0, 1, 4)
	require.NoError(t, err)

	h.Consume(0.3, nil)

	var buf bytes.Buffer
	require.NoError(t, h.WriteGnuplot(&buf))

	want := "0 0\n0.25 0\n0.25 1\n0.5 1\n0.5 0\n0.75 0\n0.75 0\n1 0\n"
	assert.Equal(t, want, buf.String())
}

type failAfter struct {
	writes int
	err    error
}

func (w *failAfter) Write(p []byte) (int, error) {
	if w.writes <= 0 {
		return 0, w.err
	}
	w.writes--
	return len(p), nil
}

func TestWriteGnuplotSinkError(t *testing.T) {
	// Enough bins to overflow the write buffer, so the sink fails once
	// mid-stream and once at the final flush.
	h, err := New[float64](0, 1000, 500)
	require.NoError(t, err)

	sinkErr := errors.New("sink failed")

	for _, allowed := range []int{0, 1} {
		w := &failAfter{writes: allowed, err: sinkErr}
		err := h.WriteGnuplot(w)
		assert.ErrorIs(t, err, sinkErr, "after %d writes", allowed)
	}
}

func TestWriteGnuplotFile(t *testing.T) {
	h, err := New[float64](0, 4, 2)
	require.NoError(t, err)

	h.Consume(1, nil)
	h.Consume(1.5, nil)
	h.Consume(3, nil)

	path := filepath.Join(t.TempDir(), "hist.dat")
	require.NoError(t, h.WriteGnuplotFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 2\n2 2\n2 1\n4 1\n", string(data))
}

func TestWriteGnuplotFileTruncates(t *testing.T) {
	h, err := New[float64](0, 4, 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hist.dat")
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than the histogram"), 0o644))

	require.NoError(t, h.WriteGnuplotFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0 0\n2 0\n2 0\n4 0\n", string(data))
}

func TestWriteGnuplotFileBadPath(t *testing.T) {
	h, err := New[float64](0, 4, 2)
	require.NoError(t, err)

	err = h.WriteGnuplotFile(filepath.Join(t.TempDir(), "no", "such", "dir", "hist.dat"))
	assert.Error(t, err)
}
