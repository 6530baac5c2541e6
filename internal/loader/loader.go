// Package loader handles CHIP-8 ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

var (
	// ErrROMTooLarge is returned when the ROM does not fit into the CHIP-8 user memory.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrEmptyArchive is returned when an archive does not contain any file.
	ErrEmptyArchive = errors.New("archive contains no file")
)

// ROM is a loaded CHIP-8 program.
type ROM struct {
	Name     string // base name of the loaded file
	Data     []byte // raw program bytes, to be placed at chip8.ProgramStart
	Checksum uint64 // xxhash of Data
}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load loads the ROM file at the given path. Compressed files and archives are
// unpacked based on their file extension, archives have to contain the ROM as
// first file.
func (l *Loader) Load(path string) (*ROM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	return l.LoadFromBytes(path, data)
}

// LoadFromBytes loads a ROM from the given file content. The name is used to
// detect the container format and to name the ROM.
func (l *Loader) LoadFromBytes(name string, data []byte) (*ROM, error) {
	container := detectContainer(name)
	if container != Raw {
		l.logger.Debug("Auto-detected container",
			log.Stringer("container", container),
			log.String("file", name))
	}

	program, err := unpack(container, data)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s file: %w", container, err)
	}

	if len(program) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: got %d bytes, maximum is %d",
			ErrROMTooLarge, len(program), chip8.MaxProgramSize)
	}

	return &ROM{
		Name:     filepath.Base(name),
		Data:     program,
		Checksum: xxhash.Sum64(program),
	}, nil
}
