// Package disk provides an in-memory emulated disk: a fixed array of
// 64 blocks of 512 bytes each, addressed by index.
package disk

import (
	"fmt"

	fsemu "github.com/hgleung/fs-emulator"
)

// Disk is the emulated block store. The zero value is a blank disk.
type Disk struct {
	blocks [fsemu.NumBlocks][fsemu.BlockSize]byte
}

var _ fsemu.BlockStore = (*Disk)(nil)

// New returns a blank disk with every block zeroed.
func New() *Disk {
	return &Disk{}
}

// ReadBlock returns a copy of block i.
func (d *Disk) ReadBlock(i int) ([]byte, error) {
	if i < 0 || i >= fsemu.NumBlocks {
		return nil, fmt.Errorf("read block %d: %w", i, fsemu.ErrOutOfRange)
	}

	buf := make([]byte, fsemu.BlockSize)
	copy(buf, d.blocks[i][:])
	return buf, nil
}

// WriteBlock replaces the contents of block i with data.
func (d *Disk) WriteBlock(i int, data []byte) error {
	if i < 0 || i >= fsemu.NumBlocks {
		return fmt.Errorf("write block %d: %w", i, fsemu.ErrOutOfRange)
	}
	if len(data) != fsemu.BlockSize {
		return fmt.Errorf("write block %d: got %d bytes: %w", i, len(data), fsemu.ErrSizeMismatch)
	}

	copy(d.blocks[i][:], data)
	return nil
}
