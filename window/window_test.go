package window_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-partstream/registry"
	"github.com/zostay/go-partstream/window"
)

func registerBytes(t *testing.T, b []byte) (*registry.Registry, registry.DocumentID) {
	t.Helper()
	reg := registry.New()
	id := reg.Register(bytes.NewReader(b))
	return reg, id
}

func TestWindowReconstructsRange(t *testing.T) {
	t.Parallel()

	raw := []byte("0123456789abcdefghij")
	reg, id := registerBytes(t, raw)

	s, err := window.Open(reg, window.Locator{DocumentID: id, Start: 5, End: 15})
	require.NoError(t, err)

	got, err := io.ReadAll(s)
	assert.NoError(t, err)
	assert.Equal(t, raw[5:15], got)
	assert.True(t, s.EOF())
	assert.Equal(t, uint64(10), s.Tell())
}

func TestInterleavedWindows(t *testing.T) {
	t.Parallel()

	reg, id := registerBytes(t, []byte("HELLOWORLD"))

	a, err := window.Open(reg, window.Locator{DocumentID: id, Start: 0, End: 5})
	require.NoError(t, err)
	b, err := window.Open(reg, window.Locator{DocumentID: id, Start: 5, End: 10})
	require.NoError(t, err)

	buf := make([]byte, 3)

	n, err := a.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "HEL", string(buf[:n]))
	assert.Equal(t, uint64(3), a.Tell())

	n, err = b.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "WOR", string(buf[:n]))
	assert.Equal(t, uint64(3), b.Tell())

	// the request is clamped to the 2 bytes remaining in the window
	big := make([]byte, 10)
	n, err = a.Read(big)
	require.NoError(t, err)
	assert.Equal(t, "LO", string(big[:n]))
	assert.True(t, a.EOF())

	n, err = b.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "LD", string(buf[:n]))
	assert.True(t, b.EOF())
}

func TestSharedCursorIsRestored(t *testing.T) {
	t.Parallel()

	raw := bytes.NewReader([]byte("HELLOWORLD"))
	reg := registry.New()
	id := reg.Register(raw)

	// park the shared cursor somewhere a window read should not touch
	parked, err := raw.Seek(7, io.SeekStart)
	require.NoError(t, err)

	s, err := window.Open(reg, window.Locator{DocumentID: id, Start: 0, End: 5})
	require.NoError(t, err)

	buf := make([]byte, 5)
	_, err = s.Read(buf)
	require.NoError(t, err)

	cursor, err := raw.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, parked, cursor)
}

func TestOpenFailures(t *testing.T) {
	t.Parallel()

	reg, id := registerBytes(t, []byte("HELLOWORLD"))

	_, err := window.Open(reg, window.Locator{DocumentID: "nope", Start: 0, End: 5})
	assert.ErrorIs(t, err, window.ErrAddressResolution)

	_, err = window.Open(reg, window.Locator{DocumentID: id, Start: 5, End: 2})
	assert.ErrorIs(t, err, window.ErrAddressResolution)
}

func TestOpenAfterUnregisterFails(t *testing.T) {
	t.Parallel()

	reg, id := registerBytes(t, []byte("HELLOWORLD"))
	reg.Unregister(id)

	_, err := window.Open(reg, window.Locator{DocumentID: id, Start: 0, End: 5})
	assert.ErrorIs(t, err, window.ErrAddressResolution)
}

func TestSeek(t *testing.T) {
	t.Parallel()

	reg, id := registerBytes(t, []byte("HELLOWORLD"))

	s, err := window.Open(reg, window.Locator{DocumentID: id, Start: 2, End: 8})
	require.NoError(t, err)

	// absolute seeks stay inside [0, size)
	pos, err := s.Seek(4, io.SeekStart)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	_, err = s.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, window.ErrOutOfBounds)

	// seeking to exactly end-of-window is rejected, though reading to
	// natural exhaustion is allowed
	_, err = s.Seek(6, io.SeekStart)
	assert.ErrorIs(t, err, window.ErrOutOfBounds)
	assert.Equal(t, uint64(4), s.Tell())

	// relative seeks are forward-only
	pos, err = s.Seek(1, io.SeekCurrent)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), pos)

	_, err = s.Seek(-1, io.SeekCurrent)
	assert.ErrorIs(t, err, window.ErrOutOfBounds)
	assert.Equal(t, uint64(5), s.Tell())

	// end-relative seeks may move anywhere down to the window start
	pos, err = s.Seek(-6, io.SeekEnd)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	_, err = s.Seek(-7, io.SeekEnd)
	assert.ErrorIs(t, err, window.ErrOutOfBounds)

	_, err = s.Seek(0, 42)
	assert.ErrorIs(t, err, window.ErrOutOfBounds)
	assert.Equal(t, uint64(0), s.Tell())
}

func TestRestartableRead(t *testing.T) {
	t.Parallel()

	reg, id := registerBytes(t, []byte("HELLOWORLD"))

	s, err := window.Open(reg, window.Locator{DocumentID: id, Start: 2, End: 8})
	require.NoError(t, err)

	first, err := io.ReadAll(s)
	require.NoError(t, err)

	_, err = s.Seek(0, io.SeekStart)
	require.NoError(t, err)

	second, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "LLOWOR", string(second))
}

func TestEOFFromUnderlyingExhaustion(t *testing.T) {
	t.Parallel()

	// the window claims more bytes than the resource holds
	reg, id := registerBytes(t, []byte("HELLOWORLD"))

	s, err := window.Open(reg, window.Locator{DocumentID: id, Start: 8, End: 20})
	require.NoError(t, err)

	buf := make([]byte, 20)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "LD", string(buf[:n]))

	n, err = s.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	// pos is still short of the window end, but the source is done
	assert.Less(t, s.Tell(), s.Locator().Size())
	assert.True(t, s.EOF())
}

func TestStat(t *testing.T) {
	t.Parallel()

	reg, id := registerBytes(t, []byte("HELLOWORLD"))

	s, err := window.Open(reg, window.Locator{DocumentID: id, Start: 2, End: 8})
	require.NoError(t, err)

	fi, err := s.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(6), fi.Size())
	assert.Equal(t, string(id), fi.Name())
	assert.False(t, fi.IsDir())
}

func TestStatEmptyResource(t *testing.T) {
	t.Parallel()

	reg, id := registerBytes(t, []byte{})

	s, err := window.Open(reg, window.Locator{DocumentID: id, Start: 0, End: 0})
	require.NoError(t, err)

	// a zero underlying size passes through unchanged
	fi, err := s.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(0), fi.Size())
}
