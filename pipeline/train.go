package pipeline

import (
	"fmt"

	"lexeme.io/postag/logger"
	"lexeme.io/postag/pos"
	"lexeme.io/postag/types"
)

// TrainModels estimates and persists a tagging model for every configuration,
// reading annotated corpus files from corpusPath.
func TrainModels(corpusPath string, cfgs []types.Configuration) error {
	hptLogger := logger.NewLogger("Model training")
	for _, cfg := range cfgs {
		tagset, err := loadTagset(cfg.Params)
		if err != nil {
			return fmt.Errorf("configuration %q: %w", cfg.Name, err)
		}
		collector := pos.NewCollector(tagset)
		counts, err := collector.CollectDir(corpusPath)
		if err != nil {
			return fmt.Errorf("configuration %q: %w", cfg.Name, err)
		}
		var opts []pos.ModelOption
		if cfg.Params.Floor != 0 {
			opts = append(opts, pos.WithFloor(cfg.Params.Floor))
		}
		model, err := pos.Estimate(tagset, counts, opts...)
		if err != nil {
			return fmt.Errorf("configuration %q: %w", cfg.Name, err)
		}
		if err := model.SaveFile(cfg.Params.Model); err != nil {
			return fmt.Errorf("configuration %q: %w", cfg.Name, err)
		}
		hptLogger.Info().
			Str("config", cfg.Name).
			Str("model", cfg.Params.Model).
			Int("tags", model.NumTags()).
			Int("words", model.NumWords()).
			Msg("Trained and saved model")
	}
	return nil
}
