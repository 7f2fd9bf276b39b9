package di

import (
	"instarecipe/internal/caption"
	"instarecipe/internal/structures"
)

func provideNormalizer(conf *structures.Config) *caption.Normalizer {
	return caption.NewNormalizer(conf.Caption.SpamKeywords)
}
