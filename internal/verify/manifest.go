package verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrEntryMissing indicates the manifest has no digest for the target file.
var ErrEntryMissing = errors.New("no manifest entry for file")

// entry is one line of a sha256sum-format checksum manifest.
type entry struct {
	digest   string // lowercase hex, 64 characters
	filename string
}

// parseManifest parses a checksum manifest in sha256sum output format:
// "{sha256_hex}  {filename}". Lines that don't match the format are
// skipped; release manifests routinely carry entries for every artifact.
func parseManifest(r io.Reader) ([]entry, error) {
	var entries []entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		digest := strings.ToLower(fields[0])
		if !isHexDigest(digest) {
			continue
		}

		// sha256sum marks binary-mode entries with a leading "*".
		filename := strings.TrimPrefix(fields[1], "*")
		if filename == "" {
			continue
		}

		entries = append(entries, entry{digest: digest, filename: filename})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return entries, nil
}

// findDigest returns the manifest digest recorded for filename, matching on
// basename so manifests that record paths still resolve.
func findDigest(entries []entry, filename string) (string, error) {
	for _, e := range entries {
		if e.filename == filename || filepath.Base(e.filename) == filename {
			return e.digest, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrEntryMissing, filename)
}

// writeFiltered writes a single-entry manifest for filename next to it.
// Compare-mode digest tools reject manifests listing files that are not on
// disk, so the full release manifest must be reduced to the one relevant
// line before handing it over.
func writeFiltered(filename, digest string) (string, error) {
	filtered := filename + ".sha256"
	line := fmt.Sprintf("%s  %s\n", digest, filename)
	if err := os.WriteFile(filtered, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("write filtered manifest: %w", err)
	}
	return filtered, nil
}

// isHexDigest checks for a 64-character lowercase hex string.
func isHexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
