package persist

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	snapshotMagic   = [4]byte{'P', 'C', 'S', '0'}
	snapshotVersion = uint16(1)
)

// ErrFormat is returned when a snapshot file cannot be parsed.
var ErrFormat = errors.New("persist: invalid snapshot format")

// Options configure how snapshots are written.
type Options struct {
	// Codec encodes the payload. Defaults to Default.
	Codec Codec
	// Compression selects the payload compression. Defaults to
	// CompressionZstd.
	Compression Compression
}

// DefaultOptions are the options used when none are given.
var DefaultOptions = Options{
	Codec:       nil, // resolved to Default at write time
	Compression: CompressionZstd,
}

// Save encodes v and writes a self-describing snapshot to w.
func Save(w io.Writer, v any, optFns ...func(*Options)) error {
	opts := DefaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	c := opts.Codec
	if c == nil {
		c = Default
	}
	if !opts.Compression.valid() {
		return fmt.Errorf("%w: unknown compression %v", ErrFormat, opts.Compression)
	}
	name := c.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("%w: bad codec name %q", ErrFormat, name)
	}

	payload, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot payload: %w", err)
	}
	block, err := compressBlock(payload, opts.Compression)
	if err != nil {
		return fmt.Errorf("failed to compress snapshot payload: %w", err)
	}

	header := make([]byte, 0, 9+len(name))
	header = append(header, snapshotMagic[:]...)
	var fixed [4]byte
	binary.LittleEndian.PutUint16(fixed[0:2], snapshotVersion)
	fixed[2] = uint8(opts.Compression)
	fixed[3] = uint8(len(name))
	header = append(header, fixed[:]...)
	header = append(header, name...)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	if _, err := w.Write(block); err != nil {
		return fmt.Errorf("failed to write snapshot payload: %w", err)
	}
	return nil
}

// Load reads a snapshot written by Save and decodes it into v.
func Load(r io.Reader, v any) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fmt.Errorf("%w: missing header magic", ErrFormat)
	}
	if magic != snapshotMagic {
		return fmt.Errorf("%w: invalid header magic", ErrFormat)
	}

	var fixed [4]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return fmt.Errorf("%w: truncated header", ErrFormat)
	}
	version := binary.LittleEndian.Uint16(fixed[0:2])
	if version != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrFormat, version)
	}
	compression := Compression(fixed[2])
	if !compression.valid() {
		return fmt.Errorf("%w: unknown compression %d", ErrFormat, fixed[2])
	}
	nameBuf := make([]byte, fixed[3])
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return fmt.Errorf("%w: truncated codec name", ErrFormat)
	}
	c, ok := ByName(string(nameBuf))
	if !ok {
		return fmt.Errorf("%w: unknown codec %q", ErrFormat, nameBuf)
	}

	block, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot payload: %w", err)
	}
	payload, err := decompressBlock(block, compression)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if err := c.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return nil
}

// SaveFile writes a snapshot atomically: the payload goes to a temporary
// file which is fsynced and renamed over the target path.
func SaveFile(path string, v any, optFns ...func(*Options)) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := Save(f, v, optFns...); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync snapshot file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename snapshot file: %w", err)
	}

	// Sync the directory to persist the rename.
	if dir, err := os.Open(filepath.Dir(path)); err == nil {
		dir.Sync()
		dir.Close()
	}
	return nil
}

// LoadFile reads a snapshot file written by SaveFile.
func LoadFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()
	return Load(f, v)
}
