// Package snapshot stores world records on disk. The engine itself never
// touches files; binaries use this package to load and save runs.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"swarmisle/internal/sim/world"
)

const Version = 1

// Header is written as its own first line so tools can list snapshots
// without decoding the body.
type Header struct {
	Version int    `json:"version"`
	Tick    uint64 `json:"tick"`
	Week    int    `json:"week"`
	Seed    uint32 `json:"seed"`
	Agents  int    `json:"agents"`
}

func HeaderFor(rec world.Record) Header {
	return Header{Version: Version, Tick: rec.Meta.Tick, Week: rec.Meta.Week, Seed: rec.Meta.Seed, Agents: len(rec.Agents)}
}

func WriteSnapshot(path string, rec world.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := writeSnapshotFile(tmp, rec); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeSnapshotFile(path string, rec world.Record) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, _ := json.Marshal(HeaderFor(rec))
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(&rec); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

func ReadSnapshot(path string) (Header, world.Record, error) {
	var (
		h   Header
		rec world.Record
	)
	f, err := os.Open(path)
	if err != nil {
		return h, rec, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, rec, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, rec, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, rec, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return h, rec, fmt.Errorf("unsupported snapshot version %d", h.Version)
	}
	if err := json.NewDecoder(br).Decode(&rec); err != nil {
		return h, rec, fmt.Errorf("json decode: %w", err)
	}
	return h, rec, nil
}

// ReadRaw returns the world document bytes from either a plain .json file
// or a .snap.zst snapshot body, for schema validation before decoding.
func ReadRaw(path string) ([]byte, error) {
	if !IsSnapshotPath(path) {
		return os.ReadFile(path)
	}
	_, rec, err := ReadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

func IsSnapshotPath(path string) bool { return strings.HasSuffix(path, ".snap.zst") }

// PathFor names a snapshot by tick so lexical order is chronological.
func PathFor(dir string, tick uint64) string {
	return filepath.Join(dir, fmt.Sprintf("%012d.snap.zst", tick))
}

// Latest returns the newest snapshot in dir, or "" if there is none.
func Latest(dir string) string {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	latest := ""
	for _, e := range ents {
		if e.IsDir() || !IsSnapshotPath(e.Name()) {
			continue
		}
		if e.Name() > latest {
			latest = e.Name()
		}
	}
	if latest == "" {
		return ""
	}
	return filepath.Join(dir, latest)
}
