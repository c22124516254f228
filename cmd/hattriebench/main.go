// Command hattriebench is the benchmark harness named in spec.md's
// Out-of-scope list: it feeds a key corpus through Cell/Find/Cursor,
// partitioned across independent dictionaries (spec.md §5: distinct
// instances share nothing), and cross-checks each partition against a
// reference set built independently of pkg/hattrie.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/dolthub/maphash"

	"github.com/ordmap/hattrie/internal/corpus"
	"github.com/ordmap/hattrie/pkg/either"
	"github.com/ordmap/hattrie/pkg/hattrie"
	"github.com/ordmap/hattrie/pkg/tuple"
	"github.com/ordmap/hattrie/pkg/xiter"
	"github.com/ordmap/hattrie/pkg/zc"
)

// stats is what one worker reports back about the partition it processed.
type stats struct {
	inserts    int
	finds      int
	mismatches int
	insertTime time.Duration
	cursorTime time.Duration
}

func main() {
	file := flag.String("file", "-", "corpus file, one key per line ('-' for stdin)")
	workers := flag.Int("workers", runtime.NumCPU(), "number of independent dictionaries to partition the corpus across")
	bootLevels := flag.Int("boot-levels", hattrie.DefaultBootLevels, "cascaded boot fanout levels")
	pailSlots := flag.Int("pail-slots", hattrie.DefaultPailSlots, "pail child slot count (0 disables pails)")
	bucketSlots := flag.Int("bucket-slots", hattrie.DefaultBucketSlots, "bucket child slot count")
	bucketMax := flag.Int("bucket-max", hattrie.DefaultBucketMax, "live keys before a bucket bursts to radix")
	flag.Parse()

	if *workers < 1 {
		*workers = 1
	}

	data, err := corpus.Load(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hattriebench: %s\n", err)
		os.Exit(1)
	}

	keys := collectKeys(data)
	if len(keys) == 0 {
		fmt.Println("empty corpus, nothing to do")
		return
	}

	cfg := hattrie.DefaultConfig()
	cfg.BootLevels, cfg.PailSlots, cfg.BucketSlots, cfg.BucketMax = *bootLevels, *pailSlots, *bucketSlots, *bucketMax

	chunkSize := (len(keys) + *workers - 1) / *workers
	chunks := slices.Collect(xiter.Chunks(slices.Values(keys), chunkSize))

	results := make([]either.Either[error, stats], len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []string) {
			defer wg.Done()
			results[i] = runWorker(cfg, chunk)
		}(i, chunk)
	}
	wg.Wait()

	report(results)
}

// collectKeys tokenizes data into owned strings, dropping anything past
// spec.md's 16383-byte key-length cap — the core does not validate this
// itself (spec.md §7), so the driver must.
func collectKeys(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	return slices.Collect(xiter.FilterMap(corpus.Lines(data), func(v zc.View) (string, bool) {
		if v.Len() > hattrie.DefaultMaxKeyLength {
			return "", false
		}
		return string(v.Bytes(&data[0])), true
	}))
}

// runWorker builds one independent Trie over chunk, inserts every key,
// verifies every unique key is findable, and cross-checks a full cursor
// traversal against a reference set's size and a maphash-based fingerprint —
// an aggregate, order-independent check that cursor iteration surfaced
// exactly the set of keys inserted, not a subset or a duplicate-inflated
// superset.
func runWorker(cfg hattrie.Config, chunk []string) either.Either[error, stats] {
	t := hattrie.Open(cfg)
	defer t.Close()

	hasher := maphash.NewHasher[string]()
	oracle := make(map[string]struct{}, len(chunk))

	insertStart := time.Now()
	for _, k := range chunk {
		t.Cell([]byte(k))
		oracle[k] = struct{}{}
	}
	insertTime := time.Since(insertStart)

	var fingerprint uint64
	mismatches, finds := 0, 0
	for k := range oracle {
		finds++
		if _, ok := t.Find([]byte(k)); !ok {
			mismatches++
		}
		fingerprint ^= hasher.Hash(k)
	}

	cursorStart := time.Now()
	cur := t.OpenCursor()
	defer cur.Close()

	var traversed uint64
	buf := make([]byte, hattrie.DefaultMaxKeyLength)
	count := 0
	for ok := cur.Next(); ok; ok = cur.Next() {
		n := cur.Key(buf)
		traversed ^= hasher.Hash(string(buf[:n]))
		count++
	}
	cursorTime := time.Since(cursorStart)

	if count != len(oracle) || traversed != fingerprint {
		return either.Left[error, stats](fmt.Errorf(
			"traversal surfaced %d keys (fingerprint %x), want %d keys (fingerprint %x)",
			count, traversed, len(oracle), fingerprint))
	}

	return either.Right[error, stats](stats{
		inserts:    len(chunk),
		finds:      finds,
		mismatches: mismatches,
		insertTime: insertTime,
		cursorTime: cursorTime,
	})
}

func report(results []either.Either[error, stats]) {
	var total stats
	failed := 0

	for _, r := range results {
		if r.HasLeft() {
			failed++
			fmt.Fprintf(os.Stderr, "hattriebench: worker failed: %s\n", *r.Left)
			continue
		}

		s := *r.Right
		total.inserts += s.inserts
		total.finds += s.finds
		total.mismatches += s.mismatches
		total.insertTime += s.insertTime
		total.cursorTime += s.cursorTime
	}

	rows := []tuple.Tuple2[string, any]{
		tuple.New2[string, any]("workers", len(results)),
		tuple.New2[string, any]("failed", failed),
		tuple.New2[string, any]("inserts", total.inserts),
		tuple.New2[string, any]("finds", total.finds),
		tuple.New2[string, any]("mismatches", total.mismatches),
		tuple.New2[string, any]("insert_time", total.insertTime),
		tuple.New2[string, any]("cursor_time", total.cursorTime),
	}

	for _, row := range rows {
		name, value := row.Unpack()
		fmt.Printf("%-12s %v\n", name, value)
	}
}
