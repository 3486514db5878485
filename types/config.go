package types

import (
	"errors"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"

	"lexeme.io/postag/logger"

	"gopkg.in/yaml.v3"
)

type TaggerParams struct {
	Tagset        string  `yaml:"tagset" json:"tagset"`
	Model         string  `yaml:"model" json:"model"`
	DefaultTag    string  `yaml:"default_tag" json:"default_tag"`
	IgnorePattern string  `yaml:"ignore_pattern" json:"ignore_pattern"`
	Floor         float64 `yaml:"floor" json:"floor"`
}

type Configuration struct {
	Name     string       `json:"name"`
	FilePath string       `json:"file_path"`
	Params   TaggerParams `yaml:"params" json:"params"`
}

// LoadConfigurations reads every *.yaml tagger configuration in dirPath.
// Configurations missing a tagset or model path are dropped with a logged
// error rather than failing the whole load.
func LoadConfigurations(dirPath string) ([]Configuration, error) {
	hptLogger := logger.NewLogger("LoadConfigurations")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			cfg := Configuration{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(cfg.FilePath)
			if err != nil {
				hptLogger.Err(err)
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				hptLogger.Err(err)
				return
			}

			if cfg.Params.Tagset == "" || cfg.Params.Model == "" {
				hptLogger.Err(errors.New("configuration needs both tagset and model paths"))
				return
			}

			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs := make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	return configs, nil
}
