// Package shell implements the line-oriented command interpreter that
// drives the file system: one command per line, one output line per
// command, every failure reported as the literal "error".
package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hgleung/fs-emulator/fs"
)

// MemSize is the size of the scratch memory M that stages bytes for
// the rd and wr commands.
const MemSize = 1024

// Shell binds a file system to a scratch memory and executes commands
// against them.
type Shell struct {
	fsys *fs.FileSystem
	mem  [MemSize]byte
}

func New(fsys *fs.FileSystem) *Shell {
	return &Shell{fsys: fsys}
}

// Exec runs a single command line and returns its output line. The
// second result is false when the line is blank and produces no output
// at all (a successful dr on an empty directory still produces an
// empty output line).
func (sh *Shell) Exec(line string) (string, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", false
	}

	switch cmd := strings.ToLower(tokens[0]); cmd {
	case "cr":
		if len(tokens) != 2 {
			break
		}
		name := tokens[1]
		if sh.fsys.Create(name) != nil {
			break
		}
		return name + " created", true

	case "de":
		if len(tokens) != 2 {
			break
		}
		name := tokens[1]
		if sh.fsys.Destroy(name) != nil {
			break
		}
		return name + " destroyed", true

	case "op":
		if len(tokens) != 2 {
			break
		}
		name := tokens[1]
		h, err := sh.fsys.Open(name)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s opened %d", name, h), true

	case "cl":
		h, ok := sh.ints(tokens, 1)
		if !ok {
			break
		}
		if sh.fsys.Close(h[0]) != nil {
			break
		}
		return fmt.Sprintf("%d closed", h[0]), true

	case "rd":
		args, ok := sh.ints(tokens, 3)
		if !ok {
			break
		}
		h, pos, count := args[0], args[1], args[2]
		if count < 0 || pos < 0 || pos+count > MemSize {
			break
		}
		buf := make([]byte, count)
		n, err := sh.fsys.Read(h, buf, count)
		if err != nil {
			break
		}
		copy(sh.mem[pos:], buf[:n])
		return fmt.Sprintf("%d bytes read from %d", n, h), true

	case "wr":
		args, ok := sh.ints(tokens, 3)
		if !ok {
			break
		}
		h, pos, count := args[0], args[1], args[2]
		if count < 0 || pos < 0 || pos+count > MemSize {
			break
		}
		n, err := sh.fsys.Write(h, sh.mem[pos:pos+count], count)
		if err != nil || n <= 0 {
			break
		}
		return fmt.Sprintf("%d bytes written to %d", n, h), true

	case "sk":
		args, ok := sh.ints(tokens, 2)
		if !ok {
			break
		}
		pos, err := sh.fsys.Seek(args[0], args[1])
		if err != nil {
			break
		}
		return fmt.Sprintf("position is %d", pos), true

	case "dr":
		if len(tokens) != 1 {
			break
		}
		var parts []string
		for _, e := range sh.fsys.List() {
			parts = append(parts, fmt.Sprintf("%s %d", e.Name, e.Length))
		}
		return strings.Join(parts, " "), true

	case "in":
		if len(tokens) != 1 {
			break
		}
		sh.fsys.Init()
		sh.mem = [MemSize]byte{}
		return "system initialized", true

	case "rm":
		args, ok := sh.ints(tokens, 2)
		if !ok {
			break
		}
		pos, count := args[0], args[1]
		if count < 0 || pos < 0 || pos+count > MemSize {
			break
		}
		var b strings.Builder
		for _, c := range sh.mem[pos : pos+count] {
			if c != 0 {
				b.WriteByte(c)
			}
		}
		return b.String(), true

	case "wm":
		if len(tokens) < 3 {
			break
		}
		pos, err := strconv.Atoi(tokens[1])
		if err != nil {
			break
		}
		text := strings.Join(tokens[2:], " ")
		if pos < 0 || pos+len(text) > MemSize {
			break
		}
		copy(sh.mem[pos:], text)
		return fmt.Sprintf("%d bytes written to M", len(text)), true
	}

	return "error", true
}

// ints parses exactly n integer arguments after the command token.
func (sh *Shell) ints(tokens []string, n int) ([]int, bool) {
	if len(tokens) != n+1 {
		return nil, false
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
