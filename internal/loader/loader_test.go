package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	program := []byte{0x00, 0xE0, 0x12, 0x00}

	t.Run("load raw file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.ch8", program)

		loader := New(log.NewTestLogger(t))
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, "test.ch8", rom.Name)
		assert.Equal(t, program, rom.Data)
		assert.Equal(t, xxhash.Sum64(program), rom.Checksum)
	})

	t.Run("load maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, "max.ch8", make([]byte, chip8.MaxProgramSize))

		loader := New(log.NewTestLogger(t))
		rom, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom.Data, chip8.MaxProgramSize)
	})

	t.Run("error on too large file", func(t *testing.T) {
		tmpFile := createTempFile(t, "large.ch8", make([]byte, chip8.MaxProgramSize+1))

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrROMTooLarge))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestLoadFromBytes(t *testing.T) {
	program := []byte{0x60, 0x01, 0x70, 0x01}

	t.Run("load gzip data", func(t *testing.T) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, err := gz.Write(program)
		assert.NoError(t, err)
		assert.NoError(t, gz.Close())

		loader := New(log.NewTestLogger(t))
		rom, err := loader.LoadFromBytes("game.ch8.gz", buf.Bytes())
		assert.NoError(t, err)
		assert.Equal(t, "game.ch8.gz", rom.Name)
		assert.Equal(t, program, rom.Data)
	})

	t.Run("load zip data", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		rom, err := loader.LoadFromBytes("game.zip", buildZip(t, "game.ch8", program))
		assert.NoError(t, err)
		assert.Equal(t, program, rom.Data)
	})

	t.Run("error on empty zip", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, zip.NewWriter(&buf).Close())

		loader := New(log.NewTestLogger(t))
		_, err := loader.LoadFromBytes("game.zip", buf.Bytes())
		assert.True(t, errors.Is(err, ErrEmptyArchive))
	})

	t.Run("error on too large zip content", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.LoadFromBytes("game.zip", buildZip(t, "game.ch8", make([]byte, 8192)))
		assert.True(t, errors.Is(err, ErrROMTooLarge))
	})

	t.Run("error on invalid 7z data", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.LoadFromBytes("game.7z", program)
		assert.Error(t, err)
	})

	t.Run("error on invalid gzip data", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.LoadFromBytes("game.gz", program)
		assert.Error(t, err)
	})
}

func TestDetectContainer(t *testing.T) {
	tests := []struct {
		file string
		want Container
	}{
		{"game.ch8", Raw},
		{"game.rom", Raw},
		{"GAME", Raw},
		{"game.ch8.gz", Gzip},
		{"game.ZIP", Zip},
		{"game.7z", SevenZip},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, detectContainer(tt.file))
		})
	}
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

func buildZip(t *testing.T, name string, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(name)
	assert.NoError(t, err)
	_, err = f.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return buf.Bytes()
}
