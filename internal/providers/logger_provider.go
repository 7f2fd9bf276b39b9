package providers

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"instarecipe/internal/structures"
)

type TypeEnum uint8

const (
	TypeApp TypeEnum = iota
	TypeFetch
	TypeLLM
	TypeStore
	TypeRender
)

func (t TypeEnum) String() string {
	switch t {
	case TypeFetch:
		return "fetch"
	case TypeLLM:
		return "llm"
	case TypeStore:
		return "store"
	case TypeRender:
		return "render"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	log  zerolog.Logger
	file *os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	if _, err := os.Stat(conf.Logger.Dir); err != nil {
		return nil, err
	}

	path := filepath.Join(conf.Logger.Dir, "instarecipe.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, os.FileMode(conf.Logger.Mode))
	if err != nil {
		return nil, err
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	writer := zerolog.MultiLevelWriter(console, file)
	log := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	return &LogProvider{log: log, file: file}, nil
}

func (p *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	p.log.Error().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	p.log.Warn().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	p.log.Info().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	p.log.Debug().Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	p.log.WithLevel(zerolog.FatalLevel).Str("type", t.String()).Msgf(format, args...)
}

func (p *LogProvider) Close() {
	if p.file != nil {
		_ = p.file.Close()
	}
}
