// Command wordfreq is the demo word-frequency sorter named in spec.md's
// Out-of-scope list: it tokenizes a text file into words, normalizes each
// one, and stores per-word counts as an 8-byte aux payload, then drains the
// dictionary through its cursor to print words in sorted order. Unicode
// normalization happens here, at the caller's edge — the dictionary itself
// treats keys as opaque bytes (spec.md Non-goals: no Unicode collation).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ordmap/hattrie/pkg/hattrie"
	"github.com/ordmap/hattrie/pkg/opt"
)

func main() {
	file := flag.String("file", "-", "text file to tokenize ('-' for stdin)")
	top := flag.Int("top", 0, "print only the first N words in ascending order (0 = all)")
	flag.Parse()

	f := os.Stdin
	if *file != "-" && *file != "" {
		var err error
		f, err = os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wordfreq: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	cfg := hattrie.DefaultConfig()
	cfg.AuxWidth = 8

	t := hattrie.Open(cfg)
	defer t.Close()

	if err := count(f, t); err != nil {
		fmt.Fprintf(os.Stderr, "wordfreq: %s\n", err)
		os.Exit(1)
	}

	printSorted(t, *top)
}

// count scans r for words, normalizes each to NFC, and increments its aux
// counter via Cell.
func count(r *os.File, t *hattrie.Trie) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(splitWords)

	for sc.Scan() {
		word := norm.NFC.String(sc.Text())
		if word == "" {
			continue
		}

		cell := t.Cell([]byte(word))
		putLE64(cell, getLE64(cell)+1)
	}

	return sc.Err()
}

// printSorted drains the dictionary via its cursor in ascending order,
// tracking the most frequent word seen along the way as an opt.Option —
// None only when the dictionary turned out empty.
func printSorted(t *hattrie.Trie, top int) {
	cur := t.OpenCursor()
	defer cur.Close()

	best := opt.None[string]()
	var bestCount uint64

	buf := make([]byte, hattrie.DefaultMaxKeyLength)
	printed := 0

	for ok := cur.Next(); ok; ok = cur.Next() {
		n := cur.Key(buf)
		word := string(buf[:n])
		count := getLE64(cur.Aux())

		if count > bestCount {
			bestCount = count
			best = opt.Some(word)
		}

		if top == 0 || printed < top {
			fmt.Printf("%-24s %d\n", word, count)
			printed++
		}
	}

	if best.IsSome() {
		fmt.Fprintf(os.Stderr, "most frequent: %s (%d occurrences)\n", best.Unwrap(), bestCount)
	} else {
		fmt.Fprintln(os.Stderr, "no words found")
	}
}

// splitWords is a bufio.SplitFunc, in the shape of the stdlib's
// bufio.ScanWords, generalized to Unicode letters and digits via
// unicode.IsLetter/IsDigit rather than ASCII-only whitespace splitting.
func splitWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if isWordRune(r) {
			break
		}
		start += width
	}

	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if !isWordRune(r) {
			return i, data[start:i], nil
		}
		i += width
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	if atEOF {
		return len(data), nil, nil
	}

	return start, nil, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func putLE64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

func getLE64(src []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(src[i]) << (8 * i)
	}
	return v
}
