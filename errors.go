package fsemu

import "errors"

// File system errors, matched with errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrExists           = errors.New("file already exists")
	ErrNameTooLong      = errors.New("file name too long")
	ErrDirectoryFull    = errors.New("directory full")
	ErrNoFreeDescriptor = errors.New("no free descriptor")
	ErrNoFreeBlock      = errors.New("no free block")
	ErrAlreadyOpen      = errors.New("file already open")
	ErrNoFreeHandle     = errors.New("no free open file table slot")
	ErrInvalidHandle    = errors.New("invalid handle")
	ErrInvalidPosition  = errors.New("invalid position")
)

// Block store errors. These indicate misuse of the block layer and are
// treated as programming errors by the engine, not file system errors.
var (
	ErrOutOfRange   = errors.New("block index out of range")
	ErrSizeMismatch = errors.New("block data must be exactly BlockSize bytes")
)
