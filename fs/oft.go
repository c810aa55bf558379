package fs

import fsemu "github.com/hgleung/fs-emulator"

// The open file table has 4 slots. Slot 0 is permanently bound to the
// directory at init and never returned by Open. Each slot buffers the
// single data block addressed by its cursor; all byte traffic between
// callers and the disk moves through that buffer.

type oftEntry struct {
	buffer [fsemu.BlockSize]byte
	pos    int // byte cursor, -1 when the slot is closed
	size   int // cached copy of the descriptor's length
	desc   int
}

func closedEntry() oftEntry {
	return oftEntry{pos: -1}
}

// oftSlotByDescriptor reports whether descriptor d is open in some slot.
// At most one slot may be bound to a descriptor at a time.
func (fsys *FileSystem) oftSlotByDescriptor(d int) (int, bool) {
	for i := range fsys.oft {
		if fsys.oft[i].desc == d && fsys.oft[i].pos != -1 {
			return i, true
		}
	}
	return 0, false
}

// oftAllocate returns the first closed slot, skipping slot 0.
func (fsys *FileSystem) oftAllocate() (int, bool) {
	for i := 1; i < fsemu.NumHandles; i++ {
		if fsys.oft[i].pos == -1 {
			return i, true
		}
	}
	return 0, false
}

func (fsys *FileSystem) oftRelease(i int) {
	fsys.oft[i] = closedEntry()
}

// handleOpen reports whether h names an open slot.
func (fsys *FileSystem) handleOpen(h int) bool {
	return h >= 0 && h < fsemu.NumHandles && fsys.oft[h].pos != -1
}
