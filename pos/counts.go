package pos

// Counts accumulates raw co-occurrence and transition frequencies from a
// tagged corpus. It is a transient intermediate: built in one pass, consumed
// once by Estimate, then discarded.
type Counts struct {
	numTags     int
	WordTag     map[string][]int
	Transitions [][]int
	Marginals   []int
}

func NewCounts(numTags int) *Counts {
	transitions := make([][]int, numTags)
	for i := range transitions {
		transitions[i] = make([]int, numTags)
	}
	return &Counts{
		numTags:     numTags,
		WordTag:     make(map[string][]int),
		Transitions: transitions,
		Marginals:   make([]int, numTags),
	}
}

// AddObservation records one occurrence of word tagged with tag. The tag's
// marginal count is bumped as well.
func (c *Counts) AddObservation(word string, tag int) {
	row, ok := c.WordTag[word]
	if !ok {
		row = make([]int, c.numTags)
		c.WordTag[word] = row
	}
	row[tag]++
	c.Marginals[tag]++
}

func (c *Counts) AddTransition(prev, next int) {
	c.Transitions[prev][next]++
}

func (c *Counts) NumTags() int {
	return c.numTags
}

// NumWords is the number of distinct observed words.
func (c *Counts) NumWords() int {
	return len(c.WordTag)
}
