package disk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	fsemu "github.com/hgleung/fs-emulator"
)

type op interface {
	Do(*testing.T, *Disk)
}

type writeOp struct {
	i    int
	data []byte

	expErr error
}

func (op writeOp) Do(t *testing.T, d *Disk) {
	err := d.WriteBlock(op.i, op.data)
	if op.expErr == nil {
		require.NoError(t, err)
	} else {
		require.ErrorIs(t, err, op.expErr)
	}
}

type readOp struct {
	i int

	exp    []byte
	expErr error
}

func (op readOp) Do(t *testing.T, d *Disk) {
	r := require.New(t)

	data, err := d.ReadBlock(op.i)
	if op.expErr != nil {
		r.ErrorIs(err, op.expErr)
		return
	}

	r.NoError(err)
	r.Len(data, fsemu.BlockSize)
	r.True(bytes.Equal(data[:len(op.exp)], op.exp))
}

func fullBlock(b byte) []byte {
	return bytes.Repeat([]byte{b}, fsemu.BlockSize)
}

func TestDisk(t *testing.T) {
	type testcase struct {
		name string
		ops  []op
	}

	mktest := func(tc testcase) func(*testing.T) {
		return func(t *testing.T) {
			d := New()
			for _, op := range tc.ops {
				op.Do(t, d)
				t.Logf("ok: %T", op)
			}
		}
	}

	var tcs = []testcase{
		{
			name: "set then get",
			ops: []op{
				writeOp{i: 9, data: fullBlock('x')},
				readOp{i: 9, exp: fullBlock('x')},
			},
		},
		{
			name: "blocks start zeroed",
			ops: []op{
				readOp{i: 0, exp: fullBlock(0)},
				readOp{i: 63, exp: fullBlock(0)},
			},
		},
		{
			name: "write does not leak into neighbors",
			ops: []op{
				writeOp{i: 10, data: fullBlock('a')},
				writeOp{i: 11, data: fullBlock('b')},
				readOp{i: 10, exp: fullBlock('a')},
				readOp{i: 11, exp: fullBlock('b')},
				readOp{i: 12, exp: fullBlock(0)},
			},
		},
		{
			name: "index out of range",
			ops: []op{
				readOp{i: -1, expErr: fsemu.ErrOutOfRange},
				readOp{i: 64, expErr: fsemu.ErrOutOfRange},
				writeOp{i: -1, data: fullBlock(0), expErr: fsemu.ErrOutOfRange},
				writeOp{i: 64, data: fullBlock(0), expErr: fsemu.ErrOutOfRange},
			},
		},
		{
			name: "size mismatch",
			ops: []op{
				writeOp{i: 8, data: []byte("short"), expErr: fsemu.ErrSizeMismatch},
				writeOp{i: 8, data: make([]byte, fsemu.BlockSize+1), expErr: fsemu.ErrSizeMismatch},
			},
		},
		{
			name: "read returns a copy",
			ops: []op{
				writeOp{i: 20, data: fullBlock('c')},
				mutateReadOp{i: 20},
				readOp{i: 20, exp: fullBlock('c')},
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, mktest(tc))
	}
}

// mutateReadOp scribbles on the slice returned by ReadBlock to make sure
// the disk handed out a copy, not its backing array.
type mutateReadOp struct {
	i int
}

func (op mutateReadOp) Do(t *testing.T, d *Disk) {
	data, err := d.ReadBlock(op.i)
	require.NoError(t, err)
	for i := range data {
		data[i] = 0xff
	}
}
