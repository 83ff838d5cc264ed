// Package platform isolates the OS-specific parts of adding files to an archive.
package platform

import "errors"

// ErrSymlink is returned by OpenFileNoFollow when the path is a symbolic link.
var ErrSymlink = errors.New("platform: path is a symbolic link")
