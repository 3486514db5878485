package pos

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lexeme.io/postag/logger"

	"github.com/rs/zerolog"
)

// Collector walks a corpus of tagged text files and accumulates the Counts
// consumed by Estimate. Corpus files are whitespace-tokenized, each token in
// the Brown corpus form word/SYMBOL with the last slash as separator (the
// word may contain slashes, the symbol never does).
type Collector struct {
	tagset    *Tagset
	hptLogger zerolog.Logger
}

func NewCollector(tagset *Tagset) *Collector {
	return &Collector{
		tagset:    tagset,
		hptLogger: logger.NewLogger("Corpus collector"),
	}
}

// CollectDir scans every file under root, including nested subdirectories,
// and returns the accumulated counts. An unrecognized tag symbol anywhere in
// the corpus aborts the whole run with a TagNotFoundError.
func (c *Collector) CollectDir(root string) (*Counts, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &CorpusDirectoryError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &CorpusDirectoryError{Path: root, Err: fmt.Errorf("not a directory")}
	}

	counts := NewCounts(c.tagset.Len())
	fileCount := 0
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		fileCount++
		if err := c.Collect(file, counts); err != nil {
			return fmt.Errorf("corpus file %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.hptLogger.Info().
		Int("files", fileCount).
		Int("words", counts.NumWords()).
		Msg("Collected corpus counts")
	return counts, nil
}

// Collect tokenizes one corpus text and adds its frequencies to counts.
// Transitions are counted between immediate neighbors only; the first token
// contributes no transition-in. File boundaries are not otherwise modeled, so
// every file start silently skips one transition count. There is no explicit
// start or end state.
func (c *Collector) Collect(r io.Reader, counts *Counts) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	last := -1
	for scanner.Scan() {
		token := scanner.Text()

		word, symbol := splitToken(token)
		symbol = c.tagset.Normalize(symbol)
		idx, err := c.tagset.IndexOf(symbol)
		if err != nil {
			return err
		}

		counts.AddObservation(word, idx)
		if last >= 0 {
			counts.AddTransition(last, idx)
		}
		last = idx
	}
	return scanner.Err()
}

// splitToken separates word/SYMBOL at the last slash. A token with no slash
// yields an empty word and the full token as symbol, which then fails tagset
// lookup.
func splitToken(token string) (word string, symbol string) {
	slash := strings.LastIndexByte(token, '/')
	if slash < 0 {
		return "", token
	}
	return strings.ToLower(token[:slash]), token[slash+1:]
}
