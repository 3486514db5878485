package types

type TaggedTokenSection struct {
	Text  string `json:"text"`
	Tag   string `json:"tag"`
	Term  string `json:"term"`
	Begin int32  `json:"begin"`
	End   int32  `json:"end"`
}

type SentenceSection struct {
	Begin  int32                `json:"begin"`
	End    int32                `json:"end"`
	Tokens []TaggedTokenSection `json:"tokens"`
}

type TaggingResponse struct {
	DocId         string            `json:"docId"`
	ModelChecksum string            `json:"modelChecksum"`
	Sentences     []SentenceSection `json:"sentences"`
}
