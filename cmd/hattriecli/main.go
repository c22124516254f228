// Command hattriecli is the external command-line driver for pkg/hattrie:
// it reads and tokenizes a key corpus and calls only Cell, Find, and the
// Cursor operations, exactly as spec.md's Out-of-scope section requires of
// an external collaborator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/ordmap/hattrie/internal/corpus"
	"github.com/ordmap/hattrie/pkg/hattrie"
	"github.com/ordmap/hattrie/pkg/res"
	"github.com/ordmap/hattrie/pkg/xerrors"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "insert":
		err = runInsert(args)
	case "find":
		err = runFind(args)
	case "iterate":
		err = runIterate(args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hattriecli <insert|find|iterate> [flags]")
}

// reportError prints a friendlier diagnostic when the failure traces back to
// a corpus file that could not be read (any *fs.PathError), and the raw
// error otherwise.
func reportError(err error) {
	if pe, ok := xerrors.AsA[*fs.PathError](err); ok {
		fmt.Fprintf(os.Stderr, "hattriecli: could not read %s: %s\n", pe.Path, pe.Err)
		return
	}
	fmt.Fprintf(os.Stderr, "hattriecli: %s\n", err)
}

func configFlags(fs *flag.FlagSet) *hattrie.Config {
	cfg := hattrie.DefaultConfig()
	fs.IntVar(&cfg.BootLevels, "boot-levels", hattrie.DefaultBootLevels, "cascaded boot fanout levels")
	fs.IntVar(&cfg.PailSlots, "pail-slots", hattrie.DefaultPailSlots, "pail child slot count (0 disables pails)")
	fs.IntVar(&cfg.BucketSlots, "bucket-slots", hattrie.DefaultBucketSlots, "bucket child slot count")
	fs.IntVar(&cfg.BucketMax, "bucket-max", hattrie.DefaultBucketMax, "live keys before a bucket bursts to radix")
	fs.IntVar(&cfg.AuxWidth, "aux", 0, "aux payload width in bytes (0 = set semantics)")
	return &cfg
}

// loadCorpus reads the named corpus file (or stdin) wrapped in a res.Result
// so flag-parsing callers get a single value to branch on instead of a bare
// (data, error) pair.
func loadCorpus(path string) res.Result[[]byte] {
	return res.Wrap(corpus.Load(path))
}

func buildTrie(cfg hattrie.Config, data []byte) (*hattrie.Trie, int) {
	t := hattrie.Open(cfg)

	n := 0
	for line := range corpus.Lines(data) {
		t.Cell(line.Bytes(&data[0]))
		n++
	}

	return t, n
}

func runInsert(args []string) error {
	fs := flag.NewFlagSet("insert", flag.ExitOnError)
	file := fs.String("file", "-", "corpus file, one key per line ('-' for stdin)")
	cfg := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	result := loadCorpus(*file)
	if result.IsErr() {
		return result.Err
	}

	t, n := buildTrie(*cfg, result.Unwrap())
	defer t.Close()

	fmt.Printf("inserted %d keys\n", n)
	return nil
}

func runFind(args []string) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	file := fs.String("file", "-", "corpus file, one key per line ('-' for stdin)")
	key := fs.String("key", "", "key to look up after loading the corpus")
	cfg := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *key == "" {
		return errors.New("find: -key is required")
	}

	result := loadCorpus(*file)
	if result.IsErr() {
		return result.Err
	}

	t, _ := buildTrie(*cfg, result.Unwrap())
	defer t.Close()

	if aux, ok := t.Find([]byte(*key)); ok {
		fmt.Printf("found %q (aux=%x)\n", *key, aux)
	} else {
		fmt.Printf("absent %q\n", *key)
	}
	return nil
}

func runIterate(args []string) error {
	fs := flag.NewFlagSet("iterate", flag.ExitOnError)
	file := fs.String("file", "-", "corpus file, one key per line ('-' for stdin)")
	reverse := fs.Bool("reverse", false, "walk backward from the last key")
	limit := fs.Int("limit", 0, "stop after this many keys (0 = unbounded)")
	cfg := configFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	result := loadCorpus(*file)
	if result.IsErr() {
		return result.Err
	}

	t, _ := buildTrie(*cfg, result.Unwrap())
	defer t.Close()

	cur := t.OpenCursor()
	defer cur.Close()

	var ok bool
	if *reverse {
		ok = cur.Last()
	} else {
		ok = cur.Next()
	}

	buf := make([]byte, hattrie.DefaultMaxKeyLength)
	for n := 0; ok && (*limit == 0 || n < *limit); n++ {
		klen := cur.Key(buf)
		fmt.Println(string(buf[:klen]))

		if *reverse {
			ok = cur.Prev()
		} else {
			ok = cur.Next()
		}
	}

	return nil
}
