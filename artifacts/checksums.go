package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitfield/script"
)

// SumsFile is the checksum manifest written next to release artifacts.
const SumsFile = "SHA256SUMS"

// Checksum pairs a file path, relative to the artifacts root, with its
// SHA-256 digest.
type Checksum struct {
	Path   string
	Digest string
}

// Collect hashes every regular file under root, sorted by relative path.
// An existing checksum manifest is skipped so reruns stay stable.
func Collect(root string) ([]Checksum, error) {
	files, err := script.FindFiles(root).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts dir %s: %w", root, err)
	}

	sort.Strings(files)

	sums := make([]Checksum, 0, len(files))
	for _, file := range files {
		if filepath.Base(file) == SumsFile {
			continue
		}

		digest, err := HashFile(file)
		if err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(root, file)
		if err != nil {
			return nil, err
		}

		sums = append(sums, Checksum{Path: rel, Digest: digest})
	}

	return sums, nil
}

func HashFile(path string) (string, error) {
	digest, err := script.File(path).SHA256Sum()
	if err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", path, err)
	}

	return digest, nil
}

// WriteSums writes the manifest in sha256sum(1) format so artifacts can be
// verified with `sha256sum -c SHA256SUMS`.
func WriteSums(root string, sums []Checksum) error {
	var b strings.Builder
	for _, sum := range sums {
		fmt.Fprintf(&b, "%s  %s\n", sum.Digest, sum.Path)
	}

	path := filepath.Join(root, SumsFile)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
