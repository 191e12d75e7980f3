// Package dictionary loads newline-delimited word lists into the prefix index.
//
// The on-disk format is one word per line. Lines are trimmed and a single
// trailing comma or period is stripped, which tolerates lists exported from
// prose or CSV-ish sources; lines left empty after cleanup are discarded.
// The index itself never touches storage.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prefixserve/prefixserve/pkg/index"
)

// ReadWords parses a newline-delimited word list from r, applying the cleanup
// rules above. Order is preserved: the index uses it for first-insert-wins
// casing ties.
func ReadWords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var words []string
	for scanner.Scan() {
		word := cleanLine(scanner.Text())
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return words, nil
}

// cleanLine trims whitespace and strips one trailing comma or period.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasSuffix(line, ",") || strings.HasSuffix(line, ".") {
		line = strings.TrimSpace(line[:len(line)-1])
	}
	return line
}

// LoadFile reads the word list at path and builds it into ix. Returns the
// number of lines that survived cleanup, which can exceed ix.Size() when the
// list repeats words.
func LoadFile(path string, ix *index.Index) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer file.Close()

	words, err := ReadWords(file)
	if err != nil {
		return 0, fmt.Errorf("load dictionary %s: %w", path, err)
	}

	ix.BuildFromWords(words)
	log.Debugf("dictionary loaded: %d entries from %s (%d distinct)", len(words), path, ix.Size())
	return len(words), nil
}
