package fsemu // import "github.com/hgleung/fs-emulator"

// Disk geometry. The emulated disk is 64 blocks of 512 bytes each.
// Block 0 holds the allocation bitmap, blocks 1-6 the descriptor table
// and block 7 the directory; blocks 8-63 are the data pool.
const (
	BlockSize = 512
	NumBlocks = 64

	BitmapBlock    = 0
	DirectoryBlock = 7
	ReservedBlocks = 8

	DescriptorStartBlock = 1
	DescriptorBlocks     = 6
	DescriptorsPerBlock  = 32
	NumDescriptors       = DescriptorBlocks * DescriptorsPerBlock

	MaxBlocksPerFile = 3
	MaxFileSize      = MaxBlocksPerFile * BlockSize
	MaxNameLen       = 3

	NumDirEntries = 64
	NumHandles    = 4
)

// Block Layer

// BlockStore is the raw block layer: a fixed array of NumBlocks blocks,
// each exactly BlockSize bytes. It carries no file semantics.
type BlockStore interface {
	// ReadBlock returns a copy of block i.
	ReadBlock(i int) ([]byte, error)

	// WriteBlock replaces block i with data, which must be exactly
	// BlockSize bytes.
	WriteBlock(i int, data []byte) error
}

// Directory Layer

// DirEntry is one row of a directory listing: a file name and its
// current length in bytes.
type DirEntry struct {
	Name   string
	Length int
}
