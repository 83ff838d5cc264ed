package record

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHeader_FileInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		h        Header
		wantName string
		wantMode fs.FileMode
	}{
		{
			name:     "regular",
			h:        Header{Name: "dir/a.txt", Mode: 0o664, Size: 12, Typeflag: TypeReg},
			wantName: "a.txt",
			wantMode: 0o664,
		},
		{
			name:     "directory",
			h:        Header{Name: "dir/sub/", Mode: 0o775, Typeflag: TypeDir},
			wantName: "sub",
			wantMode: fs.ModeDir | 0o775,
		},
		{
			name:     "symlink",
			h:        Header{Name: "link", Mode: 0o777, Typeflag: TypeSymlink},
			wantName: "link",
			wantMode: fs.ModeSymlink | 0o777,
		},
		{
			name:     "char device with setuid",
			h:        Header{Name: "tty", Mode: 0o4620, Typeflag: TypeChar},
			wantName: "tty",
			wantMode: fs.ModeDevice | fs.ModeCharDevice | fs.ModeSetuid | 0o620,
		},
		{
			name:     "fifo",
			h:        Header{Name: "pipe", Mode: 0o600, Typeflag: TypeFIFO},
			wantName: "pipe",
			wantMode: fs.ModeNamedPipe | 0o600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fi := tt.h.FileInfo()
			assert.Equal(t, tt.wantName, fi.Name())
			assert.Equal(t, tt.wantMode, fi.Mode())
			assert.Equal(t, int64(tt.h.Size), fi.Size())
			assert.Equal(t, tt.wantMode.IsDir(), fi.IsDir())
			assert.Same(t, &tt.h, fi.Sys())
		})
	}
}

func TestHeader_ModTime(t *testing.T) {
	t.Parallel()

	h := Header{Mtime: 1337}
	assert.True(t, h.ModTime().Equal(time.Unix(1337, 0)))
}

func TestTypeFlag_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "file", TypeReg.String())
	assert.Equal(t, "file", TypeFlag(0).String())
	assert.Equal(t, "dir", TypeDir.String())
	assert.Equal(t, "symlink", TypeSymlink.String())
	assert.Equal(t, "unknown", TypeFlag('x').String())
}
