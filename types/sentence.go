package types

type Sentence struct {
	Span
	Tokens []*Token
}
