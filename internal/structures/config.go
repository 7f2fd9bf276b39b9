package structures

import "time"

type InputConfig struct {
	CollectionsPath string `yaml:"collectionsPath" validate:"required|unixPath"`
	CollectionName  string `yaml:"collectionName" validate:"required"`
}

type ProgressConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
	Backups  int    `yaml:"backups"`
}

type ExportConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type SiteConfig struct {
	OutputDir          string `yaml:"outputDir" validate:"required|unixPath"`
	BenchmarksDir      string `yaml:"benchmarksDir"`
	MinBenchmarkModels int    `yaml:"minBenchmarkModels"`
}

type FetchConfig struct {
	MinDelay time.Duration `yaml:"minDelay" validate:"required|min:1"`
	MaxDelay time.Duration `yaml:"maxDelay" validate:"required|min:1"`
	Timeout  time.Duration `yaml:"timeout" validate:"required|min:1"`
	Headless bool          `yaml:"headless"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
}

type LLMConfig struct {
	Provider     string        `yaml:"provider" validate:"required|in:gemini,ollama,lmstudio"`
	Models       []string      `yaml:"models" validate:"required"`
	MaxAttempts  int           `yaml:"maxAttempts" validate:"required|min:1"`
	RetryDelay   time.Duration `yaml:"retryDelay" validate:"required|min:1"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
	Strict       bool          `yaml:"strict"`
	GeminiAPIKey string        `yaml:"geminiApiKey"`
	OllamaHost   string        `yaml:"ollamaHost"`
	LMStudioHost string        `yaml:"lmstudioHost"`
}

type CaptionConfig struct {
	SpamKeywords []string `yaml:"spamKeywords"`
}

type ForceConfig struct {
	RefetchCaptions bool `yaml:"refetchCaptions"`
	ReprocessModels bool `yaml:"reprocessModels"`
	RegeneratePages bool `yaml:"regeneratePages"`
}

type BatchConfig struct {
	Size int `yaml:"size" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

type Config struct {
	AppName  string
	Debug    bool
	Path     string
	Input    InputConfig    `yaml:"input"`
	Progress ProgressConfig `yaml:"progress"`
	Export   ExportConfig   `yaml:"export"`
	Site     SiteConfig     `yaml:"site"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Caption  CaptionConfig  `yaml:"caption"`
	LLM      LLMConfig      `yaml:"llm"`
	Batch    BatchConfig    `yaml:"batch"`
	Force    ForceConfig    `yaml:"force"`
	Logger   LoggerConfig   `yaml:"logger"`
	Cache    CacheConfig    `yaml:"cache"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}
