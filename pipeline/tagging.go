package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"lexeme.io/postag/logger"
	"lexeme.io/postag/pos"
	"lexeme.io/postag/tokenizer"
	"lexeme.io/postag/types"
	"lexeme.io/postag/utils"
)

// NewTagging loads the tagset and persisted model named by cfg and assembles
// the tagging pipeline: sentence source -> POS tagger -> response builder.
// The returned Pipeline is safe for concurrent requests; the model is never
// mutated after this point.
func NewTagging(cfg types.Configuration) (Pipeline, error) {
	hptLogger := logger.NewLogger("Tagging pipeline")

	tagset, err := loadTagset(cfg.Params)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(cfg.Params.Model)
	if err != nil {
		return nil, &pos.ModelFileIOError{Path: cfg.Params.Model, Err: err}
	}
	var modelOpts []pos.ModelOption
	if cfg.Params.Floor != 0 {
		modelOpts = append(modelOpts, pos.WithFloor(cfg.Params.Floor))
	}
	model, err := pos.Load(bytes.NewReader(raw), tagset, modelOpts...)
	if err != nil {
		return nil, fmt.Errorf("model file %q: %w", cfg.Params.Model, err)
	}

	checksum := fmt.Sprintf("%016x", utils.HashBytes(raw))
	hptLogger.Info().
		Str("config", cfg.Name).
		Str("model_checksum", checksum).
		Int("tags", model.NumTags()).
		Int("words", model.NumWords()).
		Msg("Loaded tagging model")

	tagStage := NewPOSTagger(pos.NewDecoder(model))
	resultStage := NewTaggingResult(tagset, checksum)

	return func(request Request) <-chan string {
		in := make(chan types.Sentence)
		go func() {
			defer close(in)
			for _, sent := range tokenizer.Scan(request.Text) {
				in <- sent
			}
		}()
		return resultStage(tagStage(in), request)
	}, nil
}

func loadTagset(params types.TaggerParams) (*pos.Tagset, error) {
	var opts []pos.TagsetOption
	if params.DefaultTag != "" {
		opts = append(opts, pos.WithDefaultTag(params.DefaultTag))
	}
	if params.IgnorePattern != "" {
		opts = append(opts, pos.WithIgnorePattern(params.IgnorePattern))
	}
	return pos.LoadTagset(params.Tagset, opts...)
}
