package mtar

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/mtar/backend"
	"github.com/meigma/mtar/internal/testutil"
)

type testEntry struct {
	hdr  Header
	data []byte
}

// buildArchive writes entries and the terminator into memory and returns the bytes.
func buildArchive(t testing.TB, entries []testEntry) []byte {
	t.Helper()

	mem := backend.NewMemory(nil)
	a, err := Open(mem, ModeWrite)
	require.NoError(t, err)

	for _, e := range entries {
		h := e.hdr
		h.Size = uint64(len(e.data))
		require.NoError(t, a.WriteHeader(&h))
		require.NoError(t, a.WriteData(e.data))
	}
	require.NoError(t, a.Finalize())
	require.NoError(t, a.Close())
	return mem.Bytes()
}

// uniformArchive writes n entries named by testutil.EntryName, each holding size bytes of 'a'.
func uniformArchive(t testing.TB, n, size int) []byte {
	t.Helper()

	payload := bytes.Repeat([]byte{'a'}, size)
	mem := backend.NewMemory(nil)
	a, err := Open(mem, ModeWrite)
	require.NoError(t, err)
	for i := range n {
		require.NoError(t, a.WriteFileHeader(testutil.EntryName(i), uint64(size)))
		require.NoError(t, a.WriteData(payload))
	}
	require.NoError(t, a.Finalize())
	require.NoError(t, a.Close())
	return mem.Bytes()
}

func openRead(t testing.TB, data []byte) *Archive {
	t.Helper()

	a, err := Open(backend.NewMemory(data), ModeRead)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestArchive_IterationCompleteness(t *testing.T) {
	t.Parallel()

	n := 10_000
	if testing.Short() {
		n = 500
	}
	a := openRead(t, uniformArchive(t, n, 1024))

	count := 0
	for {
		h, err := a.ReadHeader()
		if errors.Is(err, ErrNullRecord) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, testutil.EntryName(count), h.Name)
		require.Equal(t, uint64(1024), h.Size)
		count++
		require.NoError(t, a.Next())
	}
	assert.Equal(t, n, count)
}

func TestArchive_FindEveryName(t *testing.T) {
	t.Parallel()

	const n = 1_000
	a := openRead(t, uniformArchive(t, n, 1024))

	for i := range n {
		h, err := a.Find(testutil.EntryName(i))
		require.NoError(t, err)
		require.Equal(t, uint64(1024), h.Size)
		require.Equal(t, a.LastHeaderOffset(), a.Position(), "cursor rests on the matching record")
	}

	_, err := a.Find("missing.txt")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, StatusNotFound, StatusOf(err))
}

func TestArchive_FindRandomNamesInLargeArchive(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("large archive")
	}

	const n = 10_000
	a := openRead(t, uniformArchive(t, n, 1024))

	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // deterministic test input
	for range 100 {
		name := testutil.EntryName(rng.IntN(n))
		h, err := a.Find(name)
		require.NoError(t, err, name)
		require.Equal(t, name, h.Name)
		require.Equal(t, uint64(1024), h.Size)
	}
}

func TestArchive_FindThenReadData(t *testing.T) {
	t.Parallel()

	a := openRead(t, buildArchive(t, []testEntry{
		{hdr: Header{Name: "a.txt", Mode: 0o644}, data: []byte("alpha")},
		{hdr: Header{Name: "dir/", Typeflag: TypeDir, Mode: 0o755}},
		{hdr: Header{Name: "dir/b.txt", Mode: 0o600}, data: bytes.Repeat([]byte("b"), 700)},
	}))

	h, err := a.Find("dir/b.txt")
	require.NoError(t, err)
	assert.Equal(t, uint64(0o600), h.Mode)

	buf := make([]byte, h.Size)
	require.NoError(t, a.ReadData(buf))
	assert.Equal(t, bytes.Repeat([]byte("b"), 700), buf)

	h, err = a.Find("a.txt")
	require.NoError(t, err)
	buf = make([]byte, h.Size)
	require.NoError(t, a.ReadData(buf))
	assert.Equal(t, "alpha", string(buf))

	h, err = a.Find("dir/")
	require.NoError(t, err)
	assert.Equal(t, TypeDir, h.Typeflag)
	assert.Equal(t, uint64(0), h.Size)
}

func TestArchive_NextAtTerminator(t *testing.T) {
	t.Parallel()

	a := openRead(t, buildArchive(t, []testEntry{{hdr: Header{Name: "only"}, data: []byte("x")}}))

	require.NoError(t, a.Next())
	assert.Equal(t, uint64(2*BlockSize), a.Position())

	err := a.Next()
	require.ErrorIs(t, err, ErrNullRecord)
	assert.Equal(t, StatusNullRecord, StatusOf(err))
	assert.Equal(t, uint64(2*BlockSize), a.Position(), "position stays on the terminator")
}

func TestArchive_Rewind(t *testing.T) {
	t.Parallel()

	a := openRead(t, uniformArchive(t, 3, 1000))

	require.NoError(t, a.Next())
	require.NoError(t, a.ReadData(make([]byte, 10)))
	require.NotZero(t, a.Remaining())

	require.NoError(t, a.Rewind())
	assert.Equal(t, uint64(0), a.Position())
	assert.Equal(t, uint64(0), a.Remaining())
	assert.Equal(t, uint64(0), a.LastHeaderOffset())

	h, err := a.ReadHeader()
	require.NoError(t, err)
	assert.Equal(t, testutil.EntryName(0), h.Name)
}

func TestArchive_Seek(t *testing.T) {
	t.Parallel()

	a := openRead(t, uniformArchive(t, 3, 100))

	// Each entry spans one record plus one padded block.
	require.NoError(t, a.Seek(2*2*BlockSize))
	h, err := a.ReadHeader()
	require.NoError(t, err)
	assert.Equal(t, testutil.EntryName(2), h.Name)
	assert.Equal(t, uint64(2*2*BlockSize), a.LastHeaderOffset())
}

func TestOpen_ReadValidatesFirstRecord(t *testing.T) {
	t.Parallel()

	corrupt := uniformArchive(t, 1, 10)
	corrupt[0] ^= 0xff

	tests := []struct {
		name   string
		data   []byte
		err    error
		status Status
	}{
		{name: "empty stream", data: nil, err: ErrRead, status: StatusReadFailure},
		{name: "truncated record", data: make([]byte, 100), err: ErrRead, status: StatusReadFailure},
		{name: "terminator only", data: make([]byte, 2*BlockSize), err: ErrNullRecord, status: StatusNullRecord},
		{name: "bad checksum", data: corrupt, err: ErrBadChecksum, status: StatusBadChecksum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fb := testutil.NewFaultBackend(backend.NewMemory(tt.data))
			a, err := Open(fb, ModeRead)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.status, StatusOf(err))
			assert.Nil(t, a)
			assert.True(t, fb.Closed, "backend released on failed open")
		})
	}
}

func TestOpen_InvalidMode(t *testing.T) {
	t.Parallel()

	fb := testutil.NewFaultBackend(backend.NewMemory(nil))
	_, err := Open(fb, Mode(7))
	require.ErrorIs(t, err, ErrOpen)
	require.ErrorIs(t, err, backend.ErrInvalidMode)
	assert.True(t, fb.Closed)
}

func TestOpen_AppendExtendsArchive(t *testing.T) {
	t.Parallel()

	data := buildArchive(t, []testEntry{
		{hdr: Header{Name: "one.txt"}, data: []byte("1")},
		{hdr: Header{Name: "two.txt"}, data: bytes.Repeat([]byte("2"), 600)},
	})
	mem := backend.NewMemory(data)

	a, err := Open(mem, ModeAppend)
	require.NoError(t, err)
	assert.Equal(t, uint64(2*BlockSize+3*BlockSize), a.Position(), "cursor sits on the old terminator")

	require.NoError(t, a.WriteFileHeader("three.txt", 3))
	require.NoError(t, a.WriteData([]byte("333")))
	require.NoError(t, a.Finalize())
	require.NoError(t, a.Close())

	r := openRead(t, mem.Bytes())
	var names []string
	for h, err := range r.Entries() {
		require.NoError(t, err)
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"one.txt", "two.txt", "three.txt"}, names)
	assert.Len(t, mem.Bytes(), 2*BlockSize+3*BlockSize+2*BlockSize+2*BlockSize)
}

func TestOpen_AppendToEmptyStream(t *testing.T) {
	t.Parallel()

	mem := backend.NewMemory(nil)
	a, err := Open(mem, ModeAppend)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), a.Position())

	require.NoError(t, a.WriteDirHeader("d/"))
	require.NoError(t, a.Finalize())
	require.NoError(t, a.Close())

	r := openRead(t, mem.Bytes())
	h, err := r.Find("d/")
	require.NoError(t, err)
	assert.Equal(t, TypeDir, h.Typeflag)
}

func TestArchive_Close(t *testing.T) {
	t.Parallel()

	a := openRead(t, uniformArchive(t, 1, 1))
	require.NoError(t, a.Close())

	require.ErrorIs(t, a.Close(), ErrClosed)
	_, err := a.ReadHeader()
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, a.ReadData(make([]byte, 1)), ErrClosed)
	require.ErrorIs(t, a.Next(), ErrClosed)
	require.ErrorIs(t, a.Rewind(), ErrClosed)
	require.ErrorIs(t, a.Seek(0), ErrClosed)
	require.ErrorIs(t, a.WriteFileHeader("x", 0), ErrClosed)
	require.ErrorIs(t, a.WriteData(nil), ErrClosed)
	require.ErrorIs(t, a.Finalize(), ErrClosed)
	_, err = a.Find("x")
	require.ErrorIs(t, err, ErrClosed)
}

func TestArchive_CloseFailure(t *testing.T) {
	t.Parallel()

	fb := testutil.NewFaultBackend(backend.NewMemory(nil)).FailAt(testutil.OpClose, 1)
	a, err := Open(fb, ModeWrite)
	require.NoError(t, err)

	err = a.Close()
	require.ErrorIs(t, err, ErrFailure)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Equal(t, StatusFailure, StatusOf(err))
}
