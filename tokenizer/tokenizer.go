package tokenizer

import (
	"strings"
	"unicode"

	"lexeme.io/postag/types"
)

// Scan splits text into sentences, one per non-empty line, and each sentence
// into whitespace-delimited tokens. Offsets are rune offsets into the full
// text, so spans stay stable for any later span-based consumer.
func Scan(text string) []types.Sentence {
	var sentences []types.Sentence

	offset := int32(0)
	for _, line := range strings.Split(text, "\n") {
		lineLen := int32(len([]rune(line)))
		if strings.TrimSpace(line) != "" {
			sentences = append(sentences, scanSentence(line, offset))
		}
		offset += lineLen + 1
	}
	return sentences
}

func scanSentence(line string, offset int32) types.Sentence {
	lineCopy := line
	sentence := types.Sentence{
		Span: types.Span{
			Begin: offset,
			End:   offset + int32(len([]rune(line))),
			Text:  &lineCopy,
		},
	}

	runes := []rune(line)
	start := -1
	for i := 0; i <= len(runes); i++ {
		atSpace := i == len(runes) || unicode.IsSpace(runes[i])
		if !atSpace && start < 0 {
			start = i
			continue
		}
		if atSpace && start >= 0 {
			text := string(runes[start:i])
			sentence.Tokens = append(sentence.Tokens, &types.Token{
				Span: types.Span{
					Begin: offset + int32(start),
					End:   offset + int32(i),
					Text:  &text,
				},
			})
			start = -1
		}
	}
	return sentence
}
