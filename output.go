// seehuhn.de/go/landscape - decision landscape figures
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package landscape

import (
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"seehuhn.de/go/landscape/grid"
)

// Format is an image file format.
type Format int

// These are the supported output formats.
const (
	PNG Format = iota
	JPEG
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts a format name, as returned by [Format.String],
// to a Format. "jpg" is accepted for JPEG.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return 0, fmt.Errorf("unsupported image format %q", name)
}

// FormatFor chooses the format from the extension of a file name.
func FormatFor(name string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return PNG, nil
	}
	return ParseFormat(ext)
}

// Encode writes the figure image to w.
func (f *Figure) Encode(w io.Writer, format Format) error {
	if f.Image == nil {
		return errors.New("landscape: figure has no image")
	}
	switch format {
	case PNG:
		return png.Encode(w, f.Image)
	case JPEG:
		return jpeg.Encode(w, f.Image, &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("landscape: unsupported format %s", format)
	}
}

// WriteFile stores the figure. The image is encoded into a temporary file
// in the target directory, which replaces name only after it was written
// completely. The new file is world readable, like one made by
// [os.Create] under the usual umask. On failure no file is left behind.
func (f *Figure) WriteFile(name string, format Format) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = f.Encode(tmp, format); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), name); err != nil {
		return err
	}

	f.stage = Saved
	if f.log != nil {
		f.log.Info("figure written",
			zap.String("path", name),
			zap.Stringer("format", format),
			zap.Int("width", f.Image.Rect.Dx()),
			zap.Int("height", f.Image.Rect.Dy()))
	}
	return nil
}

// RenderFile renders the table and stores the figure in the file name,
// using the format given by the file name extension. If rendering fails,
// no file is created.
func RenderFile(name string, t *grid.Table, opts Options) (*Figure, error) {
	format, err := FormatFor(name)
	if err != nil {
		return nil, err
	}
	fig, err := Render(t, opts)
	if err != nil {
		return nil, err
	}
	if err := fig.WriteFile(name, format); err != nil {
		return nil, err
	}
	return fig, nil
}
