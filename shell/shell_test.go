package shell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hgleung/fs-emulator/disk"
	"github.com/hgleung/fs-emulator/fs"
)

// step is one line of a command transcript: the input line and the
// exact output line it must produce.
type step struct {
	line string
	want string
}

func runScript(t *testing.T, steps []step) {
	sh := New(fs.New(disk.New()))
	for i, s := range steps {
		got, ok := sh.Exec(s.line)
		require.True(t, ok, "step %d: %q produced no output", i, s.line)
		require.Equal(t, s.want, got, "step %d: %q", i, s.line)
	}
}

func TestCreateDestroyTranscript(t *testing.T) {
	runScript(t, []step{
		{"cr abc", "abc created"},
		{"cr abc", "error"},
		{"de abc", "abc destroyed"},
		{"de abc", "error"},
		{"dr", ""},
	})
}

func TestWriteReadTranscript(t *testing.T) {
	runScript(t, []step{
		{"cr foo", "foo created"},
		{"op foo", "foo opened 1"},
		{"wm 0 hello", "5 bytes written to M"},
		{"wr 1 0 5", "5 bytes written to 1"},
		{"sk 1 0", "position is 0"},
		{"rd 1 100 5", "5 bytes read from 1"},
		{"rm 100 5", "hello"},
	})
}

func TestDirectoryListing(t *testing.T) {
	runScript(t, []step{
		{"cr a", "a created"},
		{"cr bb", "bb created"},
		{"op a", "a opened 1"},
		{"wm 0 xyz", "3 bytes written to M"},
		{"wr 1 0 3", "3 bytes written to 1"},
		{"cl 1", "1 closed"},
		{"dr", "a 3 bb 0"},
	})
}

func TestInitResets(t *testing.T) {
	runScript(t, []step{
		{"cr foo", "foo created"},
		{"wm 0 stale", "5 bytes written to M"},
		{"in", "system initialized"},
		{"dr", ""},
		{"cr foo", "foo created"},
		// M was cleared along with the disk.
		{"rm 0 5", ""},
	})
}

func TestSpacesInStagedText(t *testing.T) {
	runScript(t, []step{
		{"cr f", "f created"},
		{"op f", "f opened 1"},
		{"wm 10 to be or", "8 bytes written to M"},
		{"wr 1 10 8", "8 bytes written to 1"},
		{"sk 1 0", "position is 0"},
		{"rd 1 50 8", "8 bytes read from 1"},
		{"rm 50 8", "to be or"},
	})
}

func TestErrorPaths(t *testing.T) {
	runScript(t, []step{
		{"cr toolong", "error"},
		{"op foo", "error"},
		{"cl 7", "error"},
		{"cl x", "error"},
		{"sk 1 0", "error"},
		{"rd 1 0 5", "error"},
		{"wr 1 0 5", "error"},
		{"bogus", "error"},
		{"cr", "error"},
		{"cr a b", "error"},
		{"wm 2000 text", "error"},
		{"rm 1020 10", "error"},
	})
}

func TestZeroByteWriteIsAnError(t *testing.T) {
	runScript(t, []step{
		{"cr f", "f created"},
		{"op f", "f opened 1"},
		{"wr 1 0 0", "error"},
	})
}

func TestBlankLineProducesNoOutput(t *testing.T) {
	sh := New(fs.New(disk.New()))

	_, ok := sh.Exec("")
	require.False(t, ok)
	_, ok = sh.Exec("   \t  ")
	require.False(t, ok)
}

func TestHandleReuseAcrossFiles(t *testing.T) {
	runScript(t, []step{
		{"cr a", "a created"},
		{"cr b", "b created"},
		{"cr c", "c created"},
		{"cr d", "d created"},
		{"op a", "a opened 1"},
		{"op b", "b opened 2"},
		{"op c", "c opened 3"},
		{"op d", "error"},
		{"cl 2", "2 closed"},
		{"op d", "d opened 2"},
		{"op a", "error"},
	})
}
