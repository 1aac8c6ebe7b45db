package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// DefaultResultsFile is where the CLI writes results unless told otherwise.
const DefaultResultsFile = "bench-data.json"

// CompressedSuffix marks results files stored zstd-compressed.
const CompressedSuffix = ".zst"

// WriteResults encodes results as an indented JSON array.
func WriteResults(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []Result{}
	}
	return enc.Encode(results)
}

// ReadResults decodes a JSON array written by WriteResults.
func ReadResults(r io.Reader) ([]Result, error) {
	var results []Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("bench: decode results: %w", err)
	}
	return results, nil
}

// SaveResults writes results to path, zstd-compressed if path ends in
// CompressedSuffix.
func SaveResults(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bench: create results: %w", err)
	}

	var w io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(path, CompressedSuffix) {
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("bench: create results: %w", err)
		}
		w = enc
	}

	if err := WriteResults(w, results); err != nil {
		_ = f.Close()
		return fmt.Errorf("bench: write results: %w", err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			_ = f.Close()
			return fmt.Errorf("bench: write results: %w", err)
		}
	}
	return f.Close()
}

// LoadResults reads results from path, decompressing if path ends in
// CompressedSuffix.
func LoadResults(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bench: open results: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, CompressedSuffix) {
		return ReadResults(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("bench: open results: %w", err)
	}
	defer dec.Close()
	return ReadResults(dec)
}
