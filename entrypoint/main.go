package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"lexeme.io/postag/api"
	"lexeme.io/postag/logger"
	"lexeme.io/postag/pipeline"
	"lexeme.io/postag/types"
	"lexeme.io/postag/utils"
	"lexeme.io/postag/worker"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ConfigPath    string `envconfig:"HPT_CONFIG_PATH" required:"true"`
	CorpusPath    string `envconfig:"HPT_CORPUS_PATH" default:""`
	TaggerConfig  string `envconfig:"HPT_TAGGER_CONFIG" default:""`
	RestAPIActive bool   `envconfig:"HPT_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"HPT_REST_API_PORT" default:"10000"`
}

const pipelineStartMaxRetries = 5

func main() {
	logger.SetupLogging()
	hptLogger := logger.NewLogger("Main")
	fatalErrLogger := hptLogger.Fatal().Caller()
	train := flag.Bool("train", false, "a bool")
	flag.Parse()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}

	// train models from an annotated corpus
	if *train {
		cfgs, err := types.LoadConfigurations(config.ConfigPath)
		if err != nil {
			hptLogger.Err(err).Msg("Failed to load configurations")
			return
		}
		if config.CorpusPath == "" {
			fatalErrLogger.Msg("HPT_CORPUS_PATH must be set for training")
			os.Exit(1)
		}
		if err = pipeline.TrainModels(config.CorpusPath, cfgs); err != nil {
			fatalErrLogger.Err(err).Msg("Failed to train models")
			os.Exit(1)
		}
		hptLogger.Info().Msg("Models were trained and saved. Exit...")
		return
	}

	//Load Pipeline
	pipelineChannel := make(chan pipeline.Pipeline)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			cfgs, err := types.LoadConfigurations(config.ConfigPath)
			if err != nil {
				hptLogger.Err(err).Msg("Failed to load configurations. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			hptLogger.Info().Msgf("Loaded %d configurations", len(cfgs))
			hptLogger.Info().Msg("Starting pipeline loading")

			cfg, err := selectConfiguration(cfgs, config.TaggerConfig)
			if err != nil {
				fatalErrLogger.Err(err).Msg("No usable tagger configuration")
				os.Exit(1)
			}
			ppln, err := pipeline.NewTagging(cfg)
			if err != nil {
				hptLogger.Err(err).Msg("Failed to start tagging pipeline. Retrying in 5 sec")
				time.Sleep(5 * time.Second)
				continue
			}
			utils.GlobalStringStore().Lock()
			hptLogger.Info().Msg("Pipeline loaded")
			pipelineChannel <- ppln
			return
		}
		fatalErrLogger.Msg("Could not start pipeline after 5 retries, exiting")
		os.Exit(1)
	}()

	// block until pipeline loads
	ppln := <-pipelineChannel

	if config.RestAPIActive {
		go func() {
			hptLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: ppln,
			}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			hptLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			fatalErrLogger.Err(err).Msg("REST API stopped with error")
		}()
	}

	hptLogger.Info().Msg("Start tagging worker")
	for {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			hptLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			hptLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

func selectConfiguration(cfgs []types.Configuration, name string) (types.Configuration, error) {
	if len(cfgs) == 0 {
		return types.Configuration{}, fmt.Errorf("no configurations found")
	}
	if name == "" {
		return cfgs[0], nil
	}
	for _, cfg := range cfgs {
		if cfg.Name == name {
			return cfg, nil
		}
	}
	return types.Configuration{}, fmt.Errorf("configuration %q not found", name)
}
