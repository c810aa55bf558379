package fs

import (
	"encoding/binary"

	fsemu "github.com/hgleung/fs-emulator"
)

// A descriptor is four int32s packed into 16 bytes: the file length
// followed by up to three data block numbers. 32 descriptors fit in a
// block, so the 192-slot table occupies blocks 1-6. A free slot is
// encoded as [-1, 0, 0, 0].

const descSize = 16

type descriptor struct {
	length int32
	blocks [fsemu.MaxBlocksPerFile]int32
}

func freeDescriptor() descriptor {
	return descriptor{length: -1}
}

func (d descriptor) isFree() bool {
	return d.length < 0
}

func packDescriptor(buf []byte, off int, d descriptor) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(d.length))
	for n := range d.blocks {
		binary.LittleEndian.PutUint32(buf[off+4+4*n:], uint32(d.blocks[n]))
	}
}

func unpackDescriptor(buf []byte, off int) descriptor {
	var d descriptor
	d.length = int32(binary.LittleEndian.Uint32(buf[off:]))
	for n := range d.blocks {
		d.blocks[n] = int32(binary.LittleEndian.Uint32(buf[off+4+4*n:]))
	}
	return d
}

// descGet reads descriptor i from its table block. Every descriptor
// access goes through descGet/descSet so the table blocks are always
// the source of truth.
func (fsys *FileSystem) descGet(i int) descriptor {
	block := fsemu.DescriptorStartBlock + i/fsemu.DescriptorsPerBlock
	off := (i % fsemu.DescriptorsPerBlock) * descSize
	return unpackDescriptor(fsys.mustRead(block), off)
}

// descSet writes descriptor i back to its table block.
func (fsys *FileSystem) descSet(i int, d descriptor) {
	block := fsemu.DescriptorStartBlock + i/fsemu.DescriptorsPerBlock
	off := (i % fsemu.DescriptorsPerBlock) * descSize

	buf := fsys.mustRead(block)
	packDescriptor(buf, off, d)
	fsys.mustWrite(block, buf)
}

// findFreeDescriptor scans slots 0..191 ascending for the free sentinel.
func (fsys *FileSystem) findFreeDescriptor() (int, bool) {
	for i := 0; i < fsemu.NumDescriptors; i++ {
		if fsys.descGet(i).isFree() {
			return i, true
		}
	}
	return 0, false
}
