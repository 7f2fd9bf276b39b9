package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"instarecipe/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "INSTARECIPE_LOG_LEVEL")
	viper.BindEnv("llm.provider", "INSTARECIPE_LLM_PROVIDER")
	viper.BindEnv("llm.geminiApiKey", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	viper.BindEnv("fetch.username", "INSTAGRAM_USERNAME")
	viper.BindEnv("fetch.password", "INSTAGRAM_PASSWORD")
	viper.BindEnv("batch.size", "INSTARECIPE_BATCH_SIZE")
	viper.BindEnv("force.refetchCaptions", "INSTARECIPE_FORCE_REFETCH")
	viper.BindEnv("force.reprocessModels", "INSTARECIPE_FORCE_REPROCESS")
	viper.BindEnv("force.regeneratePages", "INSTARECIPE_FORCE_REGENERATE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "InstaRecipe"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Progress.Backups == 0 {
		conf.Progress.Backups = 3
	}
	if conf.Site.BenchmarksDir == "" {
		conf.Site.BenchmarksDir = filepath.Join(filepath.Dir(conf.Site.OutputDir), "validation")
	}
	if conf.Site.MinBenchmarkModels <= 0 {
		conf.Site.MinBenchmarkModels = 2
	}
	if conf.LLM.OllamaHost == "" {
		conf.LLM.OllamaHost = "http://127.0.0.1:11434"
	}
	if conf.LLM.LMStudioHost == "" {
		conf.LLM.LMStudioHost = "http://127.0.0.1:1234"
	}
}
