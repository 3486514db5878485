package pipeline

import (
	"encoding/json"
	"sort"

	"lexeme.io/postag/pos"
	"lexeme.io/postag/types"
)

// NewTaggingResult collects tagged sentences, restores document order and
// renders the response JSON.
func NewTaggingResult(tagset *pos.Tagset, modelChecksum string) func(in <-chan types.Sentence, request Request) <-chan string {

	return func(in <-chan types.Sentence, request Request) <-chan string {
		out := make(chan string)
		go func() {
			defer close(out)

			var allSentences []types.Sentence
			for sent := range in {
				allSentences = append(allSentences, sent)
			}

			// the tagger stage fans out per sentence, so arrival order is
			// not document order
			sort.Slice(allSentences, func(i, j int) bool {
				return types.SpanSortFunction(&allSentences[i].Span, &allSentences[j].Span)
			})

			response := types.TaggingResponse{
				DocId:         request.Tid,
				ModelChecksum: modelChecksum,
				Sentences:     make([]types.SentenceSection, len(allSentences)),
			}
			for i, sent := range allSentences {
				section := types.SentenceSection{
					Begin:  sent.Begin,
					End:    sent.End,
					Tokens: make([]types.TaggedTokenSection, 0, len(sent.Tokens)),
				}
				for _, token := range sent.Tokens {
					if token.IsNewline || token.Tag == nil {
						continue
					}
					section.Tokens = append(section.Tokens, types.TaggedTokenSection{
						Text:  *token.Text,
						Tag:   *token.Tag,
						Term:  termForSymbol(tagset, *token.Tag),
						Begin: token.Begin,
						End:   token.End,
					})
				}
				response.Sentences[i] = section
			}

			b, err := json.Marshal(response)
			if err != nil {
				out <- "{}"
				return
			}
			out <- string(b)
		}()
		return out
	}
}

func termForSymbol(tagset *pos.Tagset, symbol string) string {
	idx, err := tagset.IndexOf(symbol)
	if err != nil {
		return ""
	}
	return tagset.At(idx).Term
}
