package pos

import (
	"math"
	"strings"
)

// TaggedToken pairs an input token with its resolved tag.
type TaggedToken struct {
	Text string
	Tag  Tag
}

// Decoder runs first-order Viterbi decoding against an immutable Model. One
// decoder may serve concurrent Decode calls; each call builds its own
// lattice.
type Decoder struct {
	model *Model
}

func NewDecoder(model *Model) *Decoder {
	return &Decoder{model: model}
}

// Tagset exposes the tag registry the decoder resolves tags against.
func (d *Decoder) Tagset() *Tagset {
	return d.model.Tagset()
}

// Decode returns the maximum-likelihood tag assignment for tokens, one tag
// per token. Scoring runs in log space over the dense emission and
// transmission tables. No start-state prior exists: position 0 is scored as
// if a predecessor position with all-zero scores preceded it, so even the
// first token pays a transition cost into its tag. Words absent from the
// emission table resolve to the tagset's default tag with a path score of
// zero while every other tag holds the floor; the backpointer recorded there
// resumes the best-scoring path at the previous position. Ties prefer the
// smallest tag index. An empty input yields an empty output.
func (d *Decoder) Decode(tokens []string) []TaggedToken {
	length := len(tokens)
	tagged := make([]TaggedToken, length)
	if length == 0 {
		return tagged
	}

	m := d.model
	numTags := m.NumTags()
	floor := m.Floor()
	defaultIdx := m.Tagset().Default().Index

	scores := make([][]float64, numTags)
	backs := make([][]int, numTags)
	for j := 0; j < numTags; j++ {
		scores[j] = make([]float64, length)
		backs[j] = make([]int, length)
	}
	unknown := make([]bool, length)

	for i, raw := range tokens {
		word := strings.ToLower(strings.TrimSpace(raw))
		emission, known := m.Emission(word)
		if !known {
			unknown[i] = true
			for j := 0; j < numTags; j++ {
				scores[j][i] = floor
			}
			scores[defaultIdx][i] = 0
			prev := defaultIdx
			if i > 0 {
				prev = 0
				for k := 1; k < numTags; k++ {
					if scores[k][i-1] > scores[prev][i-1] {
						prev = k
					}
				}
			}
			backs[defaultIdx][i] = prev
			continue
		}

		for j := 0; j < numTags; j++ {
			best := math.Inf(-1)
			prev := 0
			for k := 0; k < numTags; k++ {
				value := m.Transition(k, j)
				if i > 0 {
					value += scores[k][i-1]
				}
				if value > best {
					best = value
					prev = k
				}
			}
			scores[j][i] = best + emission[j]
			backs[j][i] = prev
		}
	}

	final := 0
	for j := 1; j < numTags; j++ {
		if scores[j][length-1] > scores[final][length-1] {
			final = j
		}
	}

	tag := final
	for i := length - 1; i >= 0; i-- {
		if unknown[i] {
			tag = defaultIdx
		}
		tagged[i] = TaggedToken{Text: tokens[i], Tag: m.Tagset().At(tag)}
		tag = backs[tag][i]
	}
	return tagged
}
