// Command fsemu runs the emulated file system shell, either as an
// interactive REPL or over a script file:
//
//	fsemu                    interactive session on stdin
//	fsemu script.txt         run a script, results to stdout
//	fsemu script.txt out.txt run a script, results to a file
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hgleung/fs-emulator/disk"
	"github.com/hgleung/fs-emulator/fs"
	"github.com/hgleung/fs-emulator/shell"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fsemu: ")

	prompt := flag.String("prompt", "$ ", "prompt shown in interactive mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: fsemu [flags] [input_file [output_file]]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 2 {
		flag.Usage()
		os.Exit(2)
	}

	sh := shell.New(fs.New(disk.New()))

	if len(args) == 0 {
		interact(sh, *prompt)
		return
	}

	in, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("could not open input file: %v", err)
	}
	defer in.Close()

	out := io.Writer(os.Stdout)
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			log.Fatalf("could not open output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := run(sh, in, out); err != nil {
		log.Fatal(err)
	}
}

// run feeds every line of r to the shell, writing one result line per
// command to w.
func run(sh *shell.Shell, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out, ok := sh.Exec(sc.Text())
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return sc.Err()
}

func interact(sh *shell.Shell, prompt string) {
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !sc.Scan() {
			fmt.Println()
			return
		}
		if out, ok := sh.Exec(sc.Text()); ok {
			fmt.Println(out)
		}
	}
}
