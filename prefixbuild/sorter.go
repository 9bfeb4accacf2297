package prefixbuild

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kharrow/rankgraph/rankerr"
)

// sortEntry is one (prefix, docids) pair produced while projecting
// word_docids onto their popular prefixes.
type sortEntry struct {
	key    string
	docids *roaring.Bitmap
}

// sorter accumulates (prefix, docids) pairs, spilling sorted runs to
// temp files once the in-memory buffer grows past maxInMemory entries,
// then merges the in-memory remainder and every spilled run by key,
// unioning docids that share a key. It stands in for grenad::Sorter
// plus the word_docids_merge reducer the original prefix builder uses
// (DESIGN.md); no pack example ships a chunked external sorter, so this
// is implemented directly over os.CreateTemp, bufio, and encoding/binary.
type sorter struct {
	maxInMemory int
	buf         []sortEntry
	runFiles    []string
}

func newSorter() *sorter {
	return &sorter{maxInMemory: 4096}
}

// add records one (key, docids) pair, then spills the buffer to a temp
// file once it holds maxInMemory entries.
func (s *sorter) add(key string, docids *roaring.Bitmap) error {
	s.buf = append(s.buf, sortEntry{key: key, docids: docids})
	if len(s.buf) >= s.maxInMemory {
		return s.spill()
	}
	return nil
}

func (s *sorter) spill() error {
	sort.Slice(s.buf, func(i, j int) bool { return s.buf[i].key < s.buf[j].key })

	f, err := os.CreateTemp("", "rankgraph-prefixbuild-*.run")
	if err != nil {
		return rankerr.New(rankerr.Io, "prefixbuild: create temp run file: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range s.buf {
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return rankerr.New(rankerr.Io, "prefixbuild: flush run file: %v", err)
	}

	s.runFiles = append(s.runFiles, f.Name())
	s.buf = s.buf[:0]
	return nil
}

// finish merges every spilled run with the remaining in-memory buffer
// and returns one unioned bitmap per distinct key. Every spilled temp
// file is removed before finish returns, on every path.
func (s *sorter) finish() (map[string]*roaring.Bitmap, error) {
	defer func() {
		for _, f := range s.runFiles {
			_ = os.Remove(f)
		}
		s.runFiles = nil
	}()

	merged := make(map[string]*roaring.Bitmap)
	mergeInto := func(entries []sortEntry) {
		for _, e := range entries {
			if existing, ok := merged[e.key]; ok {
				existing.Or(e.docids)
			} else {
				merged[e.key] = e.docids.Clone()
			}
		}
	}
	mergeInto(s.buf)

	for _, path := range s.runFiles {
		entries, err := readRunFile(path)
		if err != nil {
			return nil, err
		}
		mergeInto(entries)
	}

	return merged, nil
}

func writeEntry(w *bufio.Writer, e sortEntry) error {
	keyBytes := []byte(e.key)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(keyBytes))); err != nil {
		return rankerr.New(rankerr.Io, "prefixbuild: write key length: %v", err)
	}
	if _, err := w.Write(keyBytes); err != nil {
		return rankerr.New(rankerr.Io, "prefixbuild: write key: %v", err)
	}

	data, err := e.docids.ToBytes()
	if err != nil {
		return rankerr.New(rankerr.Io, "prefixbuild: serialize docids: %v", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(data))); err != nil {
		return rankerr.New(rankerr.Io, "prefixbuild: write docids length: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		return rankerr.New(rankerr.Io, "prefixbuild: write docids: %v", err)
	}
	return nil
}

func readRunFile(path string) ([]sortEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rankerr.New(rankerr.Io, "prefixbuild: open run file: %v", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var entries []sortEntry
	for {
		var keyLen uint32
		if err := binary.Read(r, binary.LittleEndian, &keyLen); err != nil {
			if err == io.EOF {
				break
			}
			return nil, rankerr.New(rankerr.Io, "prefixbuild: read key length: %v", err)
		}

		keyBytes := make([]byte, keyLen)
		if _, err := io.ReadFull(r, keyBytes); err != nil {
			return nil, rankerr.New(rankerr.Io, "prefixbuild: read key: %v", err)
		}

		var dataLen uint32
		if err := binary.Read(r, binary.LittleEndian, &dataLen); err != nil {
			return nil, rankerr.New(rankerr.Io, "prefixbuild: read docids length: %v", err)
		}
		data := make([]byte, dataLen)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, rankerr.New(rankerr.Io, "prefixbuild: read docids: %v", err)
		}

		bm := roaring.New()
		if _, err := bm.FromBuffer(data); err != nil {
			return nil, rankerr.New(rankerr.Io, "prefixbuild: decode docids: %v", err)
		}
		entries = append(entries, sortEntry{key: string(keyBytes), docids: bm})
	}
	return entries, nil
}
