package archive

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, f *zip.File) []byte {
	rc, err := f.Open()
	require.NoError(t, err)
	defer func() {
		_ = rc.Close()
	}()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestBuildRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "a.txt", Data: []byte("hola")},
		{Name: "dir/b.bin", Data: []byte{0, 1, 2, 0xff, 0xfe}},
		{Name: "empty", Data: nil},
		{Name: "ñandú.xml", Data: []byte("<x>&amp;</x>")},
	}
	buf := Build(entries)

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	require.NoError(t, err)
	require.Len(t, zr.File, len(entries))
	for i, f := range zr.File {
		assert.Equal(t, entries[i].Name, f.Name)
		assert.Equal(t, zip.Store, f.Method)
		assert.Equal(t, Checksum(entries[i].Data), f.CRC32)
		assert.Equal(t, uint64(len(entries[i].Data)), f.UncompressedSize64)
		assert.Equal(t, uint64(len(entries[i].Data)), f.CompressedSize64)
		if len(entries[i].Data) == 0 {
			assert.Empty(t, readAll(t, f))
		} else {
			assert.Equal(t, entries[i].Data, readAll(t, f))
		}
	}
}

func TestBuildLayout(t *testing.T) {
	b := NewBuilder().
		Add("[Content_Types].xml", []byte("one")).
		Add("_rels/.rels", []byte("two two")).
		Add("word/document.xml", bytes.Repeat([]byte("x"), 300))
	buf := b.Bytes()
	require.Len(t, buf, b.Size())

	wantOffset := 0
	for _, e := range b.Entries() {
		wantOffset += 30 + len(e.Name) + len(e.Data)
	}
	assert.Equal(t, wantOffset, b.DirectoryOffset())

	le := binary.LittleEndian
	end := buf[len(buf)-22:]
	assert.Equal(t, uint32(0x06054b50), le.Uint32(end[0:]))
	assert.Equal(t, uint16(3), le.Uint16(end[8:]))
	assert.Equal(t, uint16(3), le.Uint16(end[10:]))
	assert.Equal(t, uint32(b.DirectorySize()), le.Uint32(end[12:]))
	assert.Equal(t, uint32(wantOffset), le.Uint32(end[16:]))
	assert.Equal(t, uint16(0), le.Uint16(end[20:]))

	// first local header
	assert.Equal(t, uint32(0x04034b50), le.Uint32(buf[0:]))
	assert.Equal(t, uint16(20), le.Uint16(buf[4:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[8:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[10:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[12:]))
	assert.Equal(t, Checksum([]byte("one")), le.Uint32(buf[14:]))

	// directory records point back at each local header
	pos := wantOffset
	localPos := 0
	for _, e := range b.Entries() {
		assert.Equal(t, uint32(0x02014b50), le.Uint32(buf[pos:]))
		assert.Equal(t, uint16(20), le.Uint16(buf[pos+4:]))
		assert.Equal(t, uint16(20), le.Uint16(buf[pos+6:]))
		assert.Equal(t, uint32(localPos), le.Uint32(buf[pos+42:]))
		assert.Equal(t, e.Name, string(buf[pos+46:pos+46+len(e.Name)]))
		pos += 46 + len(e.Name)
		localPos += 30 + len(e.Name) + len(e.Data)
	}
}

func TestBuildDeterministic(t *testing.T) {
	entries := []Entry{{Name: "a", Data: []byte("1")}, {Name: "b", Data: []byte("2")}}
	assert.Equal(t, Build(entries), Build(entries))
}

func TestBuildEmpty(t *testing.T) {
	buf := Build(nil)
	require.Len(t, buf, 22)
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}

func TestBuilderWriteTo(t *testing.T) {
	b := NewBuilder().Add("x", []byte("y"))
	var w bytes.Buffer
	n, err := b.WriteTo(&w)
	require.NoError(t, err)
	assert.Equal(t, int64(b.Size()), n)
	assert.Equal(t, b.Bytes(), w.Bytes())
}
