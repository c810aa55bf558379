package fs

import fsemu "github.com/hgleung/fs-emulator"

// The allocation bitmap lives in block 0, one flag byte per block.
// Blocks 0-7 are system reserved and stay marked for the life of the
// file system; only 8-63 are ever handed out.

func (fsys *FileSystem) isFree(i int) bool {
	return fsys.bitmap[i] == 0
}

// findFreeBlock scans the data pool in ascending order and returns the
// lowest free block. This is the only allocation policy.
func (fsys *FileSystem) findFreeBlock() (int, bool) {
	for i := fsemu.ReservedBlocks; i < fsemu.NumBlocks; i++ {
		if fsys.bitmap[i] == 0 {
			return i, true
		}
	}
	return 0, false
}

// mark flips block i's occupancy flag and writes the bitmap through to
// block 0. Callers must never mark a reserved block free.
func (fsys *FileSystem) mark(i int, used bool) {
	if used {
		fsys.bitmap[i] = 1
	} else {
		fsys.bitmap[i] = 0
	}
	fsys.flushBitmap()
}

func (fsys *FileSystem) flushBitmap() {
	buf := make([]byte, fsemu.BlockSize)
	copy(buf, fsys.bitmap[:])
	fsys.mustWrite(fsemu.BitmapBlock, buf)
}
