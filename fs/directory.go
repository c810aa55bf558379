package fs

import (
	"encoding/binary"

	fsemu "github.com/hgleung/fs-emulator"
)

// The directory is 64 fixed slots mapping a name of up to 3 characters
// to a descriptor index. It is kept in memory and written through to
// block 7 after every mutation, packed 8 bytes per slot: the name
// NUL-padded to 4 bytes, then the descriptor index as an int32.

const dirEntrySize = 8

type dirEntry struct {
	name string // "" marks a free slot
	desc int
}

// dirFind returns the slot whose name matches exactly.
func (fsys *FileSystem) dirFind(name string) (int, bool) {
	for i, e := range fsys.dir {
		if e.name == name {
			return i, true
		}
	}
	return 0, false
}

// dirFreeSlot returns the first slot with an empty name.
func (fsys *FileSystem) dirFreeSlot() (int, bool) {
	return fsys.dirFind("")
}

func (fsys *FileSystem) dirSet(i int, name string, desc int) {
	fsys.dir[i] = dirEntry{name: name, desc: desc}
	fsys.flushDirectory()
}

func (fsys *FileSystem) dirClear(i int) {
	fsys.dir[i] = dirEntry{}
	fsys.flushDirectory()
}

// flushDirectory serializes all 64 slots back to block 7.
func (fsys *FileSystem) flushDirectory() {
	buf := make([]byte, fsemu.BlockSize)
	for i, e := range fsys.dir {
		off := i * dirEntrySize
		copy(buf[off:off+fsemu.MaxNameLen], e.name)
		binary.LittleEndian.PutUint32(buf[off+4:], uint32(e.desc))
	}
	fsys.mustWrite(fsemu.DirectoryBlock, buf)
}
