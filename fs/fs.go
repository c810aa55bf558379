// Package fs implements a file system over a fixed 64-block emulated
// disk: a bitmap allocator in block 0, a 192-slot descriptor table in
// blocks 1-6, a 64-entry directory in block 7, and a 4-slot open file
// table with single-block buffering. Files hold at most 3 data blocks.
package fs

import (
	"fmt"

	fsemu "github.com/hgleung/fs-emulator"
)

// FileSystem owns all file system state for one emulated disk. It is
// not safe for concurrent use; callers issue one operation at a time.
type FileSystem struct {
	store  fsemu.BlockStore
	bitmap [fsemu.NumBlocks]byte
	dir    [fsemu.NumDirEntries]dirEntry
	oft    [fsemu.NumHandles]oftEntry
}

// New returns a freshly initialized file system on top of store.
func New(store fsemu.BlockStore) *FileSystem {
	fsys := &FileSystem{store: store}
	fsys.Init()
	return fsys
}

// Init re-establishes a blank disk: blocks 0-7 reserved, all
// descriptors free, the directory empty and permanently open in OFT
// slot 0 as descriptor 0. Init is idempotent and never fails.
func (fsys *FileSystem) Init() {
	for i := range fsys.bitmap {
		if i < fsemu.ReservedBlocks {
			fsys.bitmap[i] = 1
		} else {
			fsys.bitmap[i] = 0
		}
	}
	fsys.flushBitmap()

	free := make([]byte, fsemu.BlockSize)
	for i := 0; i < fsemu.DescriptorsPerBlock; i++ {
		d := freeDescriptor()
		packDescriptor(free, i*descSize, d)
	}
	for b := 0; b < fsemu.DescriptorBlocks; b++ {
		fsys.mustWrite(fsemu.DescriptorStartBlock+b, free)
	}

	zero := make([]byte, fsemu.BlockSize)
	for i := fsemu.ReservedBlocks; i < fsemu.NumBlocks; i++ {
		fsys.mustWrite(i, zero)
	}

	fsys.dir = [fsemu.NumDirEntries]dirEntry{}
	fsys.flushDirectory()

	// Descriptor 0 is the directory's own file, living in block 7.
	fsys.descSet(0, descriptor{length: 0, blocks: [fsemu.MaxBlocksPerFile]int32{fsemu.DirectoryBlock, 0, 0}})

	for i := range fsys.oft {
		fsys.oft[i] = closedEntry()
	}
	fsys.oft[0].pos = 0
	fsys.oft[0].size = 0
	fsys.oft[0].desc = 0
	copy(fsys.oft[0].buffer[:], fsys.mustRead(fsemu.DirectoryBlock))
}

// Create allocates a descriptor, one data block, and a directory entry
// for name, then persists the directory. It returns no handle.
func (fsys *FileSystem) Create(name string) error {
	if len(name) > fsemu.MaxNameLen {
		return fmt.Errorf("create %q: %w", name, fsemu.ErrNameTooLong)
	}
	if _, ok := fsys.dirFind(name); ok {
		return fmt.Errorf("create %q: %w", name, fsemu.ErrExists)
	}

	slot, ok := fsys.dirFreeSlot()
	if !ok {
		return fmt.Errorf("create %q: %w", name, fsemu.ErrDirectoryFull)
	}
	di, ok := fsys.findFreeDescriptor()
	if !ok {
		return fmt.Errorf("create %q: %w", name, fsemu.ErrNoFreeDescriptor)
	}
	blk, ok := fsys.findFreeBlock()
	if !ok {
		return fmt.Errorf("create %q: %w", name, fsemu.ErrNoFreeBlock)
	}

	fsys.mark(blk, true)
	fsys.descSet(di, descriptor{length: 0, blocks: [fsemu.MaxBlocksPerFile]int32{int32(blk), 0, 0}})
	fsys.dirSet(slot, name, di)
	return nil
}

// Destroy returns every block owned by name to the allocator, frees its
// descriptor, and clears its directory entry. It does not check the
// open file table: destroying an open file leaves that handle bound to
// a freed descriptor, exactly as a later Create may reuse it.
func (fsys *FileSystem) Destroy(name string) error {
	slot, ok := fsys.dirFind(name)
	if !ok {
		return fmt.Errorf("destroy %q: %w", name, fsemu.ErrNotFound)
	}

	di := fsys.dir[slot].desc
	d := fsys.descGet(di)
	for _, b := range d.blocks {
		if b != 0 {
			fsys.mark(int(b), false)
		}
	}
	fsys.descSet(di, freeDescriptor())
	fsys.dirClear(slot)
	return nil
}

// Open binds name to a free OFT slot, loads its first block into the
// slot buffer, and returns the slot index as the file handle.
func (fsys *FileSystem) Open(name string) (int, error) {
	slot, ok := fsys.dirFind(name)
	if !ok {
		return -1, fmt.Errorf("open %q: %w", name, fsemu.ErrNotFound)
	}
	di := fsys.dir[slot].desc

	if _, open := fsys.oftSlotByDescriptor(di); open {
		return -1, fmt.Errorf("open %q: %w", name, fsemu.ErrAlreadyOpen)
	}
	h, ok := fsys.oftAllocate()
	if !ok {
		return -1, fmt.Errorf("open %q: %w", name, fsemu.ErrNoFreeHandle)
	}

	d := fsys.descGet(di)
	e := &fsys.oft[h]
	copy(e.buffer[:], fsys.mustRead(int(d.blocks[0])))
	e.pos = 0
	e.size = int(d.length)
	e.desc = di
	return h, nil
}

// Close flushes the slot buffer to the data block containing the cursor,
// if that block is allocated, and releases the slot.
func (fsys *FileSystem) Close(h int) error {
	if !fsys.handleOpen(h) {
		return fmt.Errorf("close %d: %w", h, fsemu.ErrInvalidHandle)
	}

	e := &fsys.oft[h]
	d := fsys.descGet(e.desc)
	if idx := e.pos / fsemu.BlockSize; idx < fsemu.MaxBlocksPerFile {
		if b := d.blocks[idx]; b != 0 {
			fsys.mustWrite(int(b), e.buffer[:])
		}
	}
	fsys.oftRelease(h)
	return nil
}

// Read copies up to count bytes from the cursor into dest, one byte at
// a time, reloading the slot buffer whenever the cursor crosses into
// the next allocated block. It stops early at end of file, at the
// 3-block limit, or at an unallocated block, and returns the number of
// bytes actually read; a short read is not an error.
func (fsys *FileSystem) Read(h int, dest []byte, count int) (int, error) {
	if !fsys.handleOpen(h) {
		return -1, fmt.Errorf("read %d: %w", h, fsemu.ErrInvalidHandle)
	}
	if count > len(dest) {
		count = len(dest)
	}

	e := &fsys.oft[h]
	d := fsys.descGet(e.desc)

	read := 0
	for read < count {
		if e.pos >= int(d.length) {
			break
		}

		idx := e.pos / fsemu.BlockSize
		bufPos := e.pos % fsemu.BlockSize

		// A prior read or write may have left the buffer holding an
		// earlier block; refresh it before the first byte.
		if idx > 0 && read == 0 {
			if b := d.blocks[idx]; b != 0 {
				copy(e.buffer[:], fsys.mustRead(int(b)))
			}
		}

		dest[read] = e.buffer[bufPos]
		read++
		e.pos++

		if e.pos%fsemu.BlockSize == 0 && read < count {
			next := e.pos / fsemu.BlockSize
			if next >= fsemu.MaxBlocksPerFile {
				break
			}
			b := d.blocks[next]
			if b == 0 {
				break
			}
			copy(e.buffer[:], fsys.mustRead(int(b)))
		}
	}
	return read, nil
}

// Write copies up to count bytes from src into the slot buffer starting
// at the cursor, allocating a data block lazily the first time the
// cursor enters a block whose slot is still 0. The buffer is flushed
// when a block fills and when the request is exhausted. Write stops at
// the 3-block ceiling or when the allocator runs dry, returning the
// bytes actually written; a short write is not an error.
func (fsys *FileSystem) Write(h int, src []byte, count int) (int, error) {
	if !fsys.handleOpen(h) {
		return -1, fmt.Errorf("write %d: %w", h, fsemu.ErrInvalidHandle)
	}
	if count > len(src) {
		count = len(src)
	}

	e := &fsys.oft[h]
	di := e.desc
	d := fsys.descGet(di)

	written := 0
	for written < count {
		idx := e.pos / fsemu.BlockSize
		if idx >= fsemu.MaxBlocksPerFile {
			break
		}
		bufPos := e.pos % fsemu.BlockSize

		if bufPos == 0 && idx > 0 {
			if d.blocks[idx] == 0 {
				blk, ok := fsys.findFreeBlock()
				if !ok {
					break
				}
				fsys.mark(blk, true)
				d.blocks[idx] = int32(blk)
				fsys.descSet(di, d)
				e.buffer = [fsemu.BlockSize]byte{}
			} else {
				copy(e.buffer[:], fsys.mustRead(int(d.blocks[idx])))
			}
		}

		e.buffer[bufPos] = src[written]
		written++
		e.pos++

		if bufPos == fsemu.BlockSize-1 || written == count {
			if b := d.blocks[idx]; b != 0 {
				fsys.mustWrite(int(b), e.buffer[:])
			}
		}

		if e.pos > int(d.length) {
			d.length = int32(e.pos)
		}
	}

	fsys.descSet(di, d)
	e.size = int(d.length)
	return written, nil
}

// Seek reloads the block containing pos into the slot buffer and moves
// the cursor there. The previous buffer contents are discarded without
// a flush. pos must lie in [0, length] and map to an allocated block.
func (fsys *FileSystem) Seek(h int, pos int) (int, error) {
	if !fsys.handleOpen(h) {
		return -1, fmt.Errorf("seek %d: %w", h, fsemu.ErrInvalidHandle)
	}

	e := &fsys.oft[h]
	d := fsys.descGet(e.desc)
	if pos < 0 || pos > int(d.length) {
		return -1, fmt.Errorf("seek %d to %d: %w", h, pos, fsemu.ErrInvalidPosition)
	}

	idx := pos / fsemu.BlockSize
	if idx >= fsemu.MaxBlocksPerFile {
		return -1, fmt.Errorf("seek %d to %d: %w", h, pos, fsemu.ErrInvalidPosition)
	}
	b := d.blocks[idx]
	if b == 0 {
		return -1, fmt.Errorf("seek %d to %d: %w", h, pos, fsemu.ErrInvalidPosition)
	}

	copy(e.buffer[:], fsys.mustRead(int(b)))
	e.pos = pos
	return pos, nil
}

// List returns a (name, length) pair for every occupied directory
// entry, in slot order.
func (fsys *FileSystem) List() []fsemu.DirEntry {
	var out []fsemu.DirEntry
	for _, e := range fsys.dir {
		if e.name == "" {
			continue
		}
		d := fsys.descGet(e.desc)
		out = append(out, fsemu.DirEntry{Name: e.name, Length: int(d.length)})
	}
	return out
}

// mustRead and mustWrite wrap the block store for engine-internal
// traffic. The engine only ever addresses blocks it owns, so a store
// error here is a programming error, not a file system condition.

func (fsys *FileSystem) mustRead(i int) []byte {
	buf, err := fsys.store.ReadBlock(i)
	if err != nil {
		panic(err)
	}
	return buf
}

func (fsys *FileSystem) mustWrite(i int, data []byte) {
	if err := fsys.store.WriteBlock(i, data); err != nil {
		panic(err)
	}
}
