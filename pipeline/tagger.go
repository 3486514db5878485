package pipeline

import (
	"sync"

	"lexeme.io/postag/pos"
	"lexeme.io/postag/types"
	"lexeme.io/postag/utils"
)

type Tagger func(tokens []*types.Token) []*types.Token

func NewPOSTagger(decoder *pos.Decoder) func(in <-chan types.Sentence) <-chan types.Sentence {
	tagset := decoder.Tagset()
	symbols := make([]*string, tagset.Len())
	for i := range symbols {
		symbols[i] = utils.GlobalStringStore().GetPointer(tagset.At(i).Symbol)
	}

	return func(in <-chan types.Sentence) <-chan types.Sentence {
		out := make(chan types.Sentence)
		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {

				wg.Add(1)
				go func(sent types.Sentence) {
					defer wg.Done()
					if sent.Tokens != nil && len(sent.Tokens) > 0 {

						words := make([]string, 0, len(sent.Tokens))
						wordsIndex := make([]int, 0, len(sent.Tokens))
						for i, token := range sent.Tokens {
							if token.IsNewline {
								continue
							}
							words = append(words, *token.Text)
							wordsIndex = append(wordsIndex, i)
						}

						tagged := decoder.Decode(words)

						for i, taggedToken := range tagged {
							tokenIndex := wordsIndex[i]
							sent.Tokens[tokenIndex].Tag = symbols[taggedToken.Tag.Index]
						}
					}
					out <- sent
				}(sent)

			}

			wg.Wait()

		}()
		return out
	}
}
