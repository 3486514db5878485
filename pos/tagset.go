package pos

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultIgnorePattern strips Brown-style decoration suffixes from raw corpus
// tag symbols ("nn-tl" -> "nn") before tagset lookup.
const DefaultIgnorePattern = `(-hl|-tl|-nc)`

type Tag struct {
	Index  int
	Symbol string
	Term   string
}

// Tagset is an immutable registry of part-of-speech tags. Indices are dense,
// symbol<->index is a bijection, and one tag is distinguished as the default
// assigned to words never seen during training.
type Tagset struct {
	tags       []Tag
	bySymbol   map[string]int
	defaultIdx int
	ignore     *regexp.Regexp
}

type TagsetOption func(*tagsetParams)

type tagsetParams struct {
	defaultSymbol string
	ignorePattern string
}

// WithDefaultTag picks the fallback tag by symbol. Without it the first tag
// of the set is the fallback.
func WithDefaultTag(symbol string) TagsetOption {
	return func(p *tagsetParams) {
		p.defaultSymbol = symbol
	}
}

func WithIgnorePattern(pattern string) TagsetOption {
	return func(p *tagsetParams) {
		p.ignorePattern = pattern
	}
}

func NewTagset(tags []Tag, opts ...TagsetOption) (*Tagset, error) {
	params := tagsetParams{ignorePattern: DefaultIgnorePattern}
	for _, opt := range opts {
		opt(&params)
	}

	if len(tags) == 0 {
		return nil, errors.New("tagset is empty")
	}

	ignore, err := regexp.Compile(params.ignorePattern)
	if err != nil {
		return nil, fmt.Errorf("bad ignore pattern %q: %w", params.ignorePattern, err)
	}

	ts := Tagset{
		tags:     make([]Tag, len(tags)),
		bySymbol: make(map[string]int, len(tags)),
		ignore:   ignore,
	}
	for i, tag := range tags {
		if _, exists := ts.bySymbol[tag.Symbol]; exists {
			return nil, fmt.Errorf("duplicate tag symbol %q", tag.Symbol)
		}
		tag.Index = i
		ts.tags[i] = tag
		ts.bySymbol[tag.Symbol] = i
	}

	if params.defaultSymbol != "" {
		idx, ok := ts.bySymbol[params.defaultSymbol]
		if !ok {
			return nil, &TagNotFoundError{Symbol: params.defaultSymbol}
		}
		ts.defaultIdx = idx
	}

	return &ts, nil
}

// LoadTagset reads a tagset definition file with one tag per line in the form
//
//	symbol<TAB>descriptive term
//
// e.g. "cs\tconjunction, subordinating". Blank lines are skipped.
func LoadTagset(path string, opts ...TagsetOption) (*Tagset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &TagsetLoadError{Path: path, Err: err}
	}
	defer file.Close()

	var tags []Tag
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, &TagsetLoadError{
				Path: path,
				Err:  fmt.Errorf("line %d: expected \"symbol<TAB>term\", got %q", lineNo, line),
			}
		}
		tags = append(tags, Tag{
			Symbol: parts[0],
			Term:   strings.TrimSpace(parts[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &TagsetLoadError{Path: path, Err: err}
	}

	ts, err := NewTagset(tags, opts...)
	if err != nil {
		return nil, &TagsetLoadError{Path: path, Err: err}
	}
	return ts, nil
}

func (ts *Tagset) Len() int {
	return len(ts.tags)
}

func (ts *Tagset) At(i int) Tag {
	return ts.tags[i]
}

func (ts *Tagset) IndexOf(symbol string) (int, error) {
	idx, ok := ts.bySymbol[symbol]
	if !ok {
		return 0, &TagNotFoundError{Symbol: symbol}
	}
	return idx, nil
}

func (ts *Tagset) Default() Tag {
	return ts.tags[ts.defaultIdx]
}

// Normalize strips ignore-pattern decoration from a raw corpus tag symbol.
func (ts *Tagset) Normalize(symbol string) string {
	return ts.ignore.ReplaceAllString(symbol, "")
}
