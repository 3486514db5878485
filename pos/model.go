package pos

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultFloor is the log-probability sentinel standing in for "no evidence
// observed". It is finite so that sums of floored entries still order
// correctly against real log-probabilities.
const DefaultFloor = -1.0e9

// Model holds the estimated HMM probabilities: per-word log emission vectors
// and a dense tag-to-tag log transmission matrix. Entries with no observed
// evidence hold the floor sentinel, so every lookup in the dense tag
// dimension returns a defined, comparably-ordered value. A Model is read-only
// after construction; concurrent decoders may share one instance.
type Model struct {
	tagset       *Tagset
	floor        float64
	emission     map[string][]float64
	transmission [][]float64
}

type ModelOption func(*modelParams)

type modelParams struct {
	floor float64
}

// WithFloor overrides the floor sentinel. The floor must stay below any real
// log-probability and below zero, the score granted to unknown words.
func WithFloor(floor float64) ModelOption {
	return func(p *modelParams) {
		p.floor = floor
	}
}

// Estimate builds a model from corpus counts as tag-conditioned relative
// frequencies: emission[w][t] = log(count(w,t) / count(t)) and
// transmission[i][j] = log(count(i->j) / count(i)), in natural-log space,
// with the floor sentinel wherever the count is zero. Probability mass is not
// renormalized; the decoder only ever compares scores.
func Estimate(tagset *Tagset, counts *Counts, opts ...ModelOption) (*Model, error) {
	if counts.NumTags() != tagset.Len() {
		return nil, &ModelMismatchError{
			Reason: fmt.Sprintf("counts cover %d tags, tagset has %d", counts.NumTags(), tagset.Len()),
		}
	}

	model := newEmptyModel(tagset, opts)
	numTags := tagset.Len()

	for word, row := range counts.WordTag {
		probs := model.flooredRow()
		for t := 0; t < numTags; t++ {
			if row[t] > 0 {
				probs[t] = math.Log(float64(row[t]) / float64(counts.Marginals[t]))
			}
		}
		model.emission[word] = probs
	}

	for i := 0; i < numTags; i++ {
		for j := 0; j < numTags; j++ {
			if counts.Transitions[i][j] > 0 {
				model.transmission[i][j] = math.Log(float64(counts.Transitions[i][j]) / float64(counts.Marginals[i]))
			}
		}
	}

	return model, nil
}

func newEmptyModel(tagset *Tagset, opts []ModelOption) *Model {
	params := modelParams{floor: DefaultFloor}
	for _, opt := range opts {
		opt(&params)
	}
	numTags := tagset.Len()
	transmission := make([][]float64, numTags)
	model := Model{
		tagset:       tagset,
		floor:        params.floor,
		emission:     make(map[string][]float64),
		transmission: transmission,
	}
	for i := range transmission {
		transmission[i] = model.flooredRow()
	}
	return &model
}

func (m *Model) flooredRow() []float64 {
	row := make([]float64, m.tagset.Len())
	for i := range row {
		row[i] = m.floor
	}
	return row
}

func (m *Model) NumTags() int {
	return m.tagset.Len()
}

func (m *Model) NumWords() int {
	return len(m.emission)
}

func (m *Model) Floor() float64 {
	return m.floor
}

func (m *Model) Tagset() *Tagset {
	return m.tagset
}

// Emission returns the per-tag log-probability vector for word. Unknown words
// report ok == false; they are not stored as floored vectors.
func (m *Model) Emission(word string) (probs []float64, ok bool) {
	probs, ok = m.emission[word]
	return probs, ok
}

func (m *Model) Transition(prev, next int) float64 {
	return m.transmission[prev][next]
}

// Save writes the model in its sparse text form:
//
//	numTags
//	numWords
//	word tagIndex logProb [tagIndex logProb ...]   (one line per known word)
//	tagSymbol tagIndex logProb [...]               (one transmission row per tag)
//
// Floored entries are omitted; the loader's default-fill reconstructs them.
// Words are written in lexical order so output is reproducible.
func (m *Model) Save(w io.Writer) error {
	buf := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(buf, "%d\n%d\n", m.NumTags(), m.NumWords()); err != nil {
		return err
	}

	words := make([]string, 0, len(m.emission))
	for word := range m.emission {
		words = append(words, word)
	}
	sort.Strings(words)

	for _, word := range words {
		if err := writeSparseRow(buf, word, m.emission[word], m.floor); err != nil {
			return err
		}
	}
	for i := 0; i < m.NumTags(); i++ {
		if err := writeSparseRow(buf, m.tagset.At(i).Symbol, m.transmission[i], m.floor); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// SaveFile persists the model atomically: the file appears only after a full
// successful write, so no partial model is ever left for a loader to consume.
func (m *Model) SaveFile(path string) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return &ModelFileIOError{Path: path, Err: err}
	}
	if err := m.Save(file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return &ModelFileIOError{Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return &ModelFileIOError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &ModelFileIOError{Path: path, Err: err}
	}
	return nil
}

func writeSparseRow(w io.Writer, label string, probs []float64, floor float64) error {
	var sb strings.Builder
	sb.WriteString(label)
	for i, p := range probs {
		if p == floor {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// Load reads a persisted model and validates it against tagset: the header
// cardinality must match and transmission rows must appear in tagset index
// order, otherwise a ModelMismatchError is returned.
func Load(r io.Reader, tagset *Tagset, opts ...ModelOption) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	numTags, err := readHeaderInt(scanner, "numTags")
	if err != nil {
		return nil, err
	}
	numWords, err := readHeaderInt(scanner, "numWords")
	if err != nil {
		return nil, err
	}
	if numTags != tagset.Len() {
		return nil, &ModelMismatchError{
			Reason: fmt.Sprintf("model has %d tags, tagset has %d", numTags, tagset.Len()),
		}
	}

	model := newEmptyModel(tagset, opts)

	for i := 0; i < numWords; i++ {
		word, probs, err := readSparseRow(scanner, model)
		if err != nil {
			return nil, fmt.Errorf("emission record %d: %w", i, err)
		}
		model.emission[word] = probs
	}

	for i := 0; i < numTags; i++ {
		symbol, probs, err := readSparseRow(scanner, model)
		if err != nil {
			return nil, fmt.Errorf("transmission record %d: %w", i, err)
		}
		idx, err := tagset.IndexOf(symbol)
		if err != nil || idx != i {
			return nil, &ModelMismatchError{
				Reason: fmt.Sprintf("transmission row %d is labeled %q, want tag %q", i, symbol, tagset.At(i).Symbol),
			}
		}
		model.transmission[i] = probs
	}

	return model, nil
}

// LoadFile opens and loads a persisted model file.
func LoadFile(path string, tagset *Tagset, opts ...ModelOption) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ModelFileIOError{Path: path, Err: err}
	}
	defer file.Close()

	model, err := Load(file, tagset, opts...)
	if err != nil {
		return nil, fmt.Errorf("model file %q: %w", path, err)
	}
	return model, nil
}

func readHeaderInt(scanner *bufio.Scanner, name string) (int, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("model header is missing %s", name)
	}
	value, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, fmt.Errorf("model header %s: %w", name, err)
	}
	return value, nil
}

// readSparseRow parses "label idx prob idx prob ..." into a dense row with
// unlisted slots at the floor.
func readSparseRow(scanner *bufio.Scanner, model *Model) (string, []float64, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("model file is truncated")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty record line")
	}
	if (len(fields)-1)%2 != 0 {
		return "", nil, fmt.Errorf("record %q has an unpaired entry", fields[0])
	}

	probs := model.flooredRow()
	for i := 1; i < len(fields); i += 2 {
		idx, err := strconv.Atoi(fields[i])
		if err != nil {
			return "", nil, fmt.Errorf("record %q: bad tag index %q", fields[0], fields[i])
		}
		if idx < 0 || idx >= len(probs) {
			return "", nil, &ModelMismatchError{
				Reason: fmt.Sprintf("record %q references tag index %d, tagset has %d tags", fields[0], idx, len(probs)),
			}
		}
		prob, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return "", nil, fmt.Errorf("record %q: bad log-probability %q", fields[0], fields[i+1])
		}
		probs[idx] = prob
	}
	return fields[0], probs, nil
}
