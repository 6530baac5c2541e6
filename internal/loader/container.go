package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/retroenv/retrochip8/internal/chip8"
)

// Container is the file format wrapping a ROM.
type Container int

// Supported containers.
const (
	Raw Container = iota
	Gzip
	Zip
	SevenZip
)

func (c Container) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zip:
		return "zip"
	case SevenZip:
		return "7z"
	default:
		return "raw"
	}
}

// detectContainer determines the container type based on file extension.
func detectContainer(filename string) Container {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".gz":
		return Gzip
	case ".zip":
		return Zip
	case ".7z":
		return SevenZip
	default:
		// .ch8, .c8, .rom and files without extension are plain bytecode
		return Raw
	}
}

// unpack returns the ROM content of the container. At most one byte more than
// the maximum program size is read from compressed streams.
func unpack(container Container, data []byte) ([]byte, error) {
	var reader io.Reader

	switch container {
	case Gzip:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz

	case Zip:
		archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("creating zip reader: %w", err)
		}
		if len(archive.File) == 0 {
			return nil, ErrEmptyArchive
		}
		rc, err := archive.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("opening archived file %s: %w", archive.File[0].Name, err)
		}
		defer func() { _ = rc.Close() }()
		reader = rc

	case SevenZip:
		archive, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("creating 7z reader: %w", err)
		}
		if len(archive.File) == 0 {
			return nil, ErrEmptyArchive
		}
		rc, err := archive.File[0].Open()
		if err != nil {
			return nil, fmt.Errorf("opening archived file %s: %w", archive.File[0].Name, err)
		}
		defer func() { _ = rc.Close() }()
		reader = rc

	default:
		return data, nil
	}

	program, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return program, nil
}
