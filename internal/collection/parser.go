package collection

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// Post is one saved post extracted from the Instagram data export.
type Post struct {
	URL       string
	Username  string
	AddedTime int64
}

// exportEntry values are loosely typed in the export file; timestamps show
// up as numbers or strings depending on the export version.
type exportEntry struct {
	Href      string      `json:"href"`
	Value     string      `json:"value"`
	Timestamp interface{} `json:"timestamp"`
}

type exportItem struct {
	Title         string                 `json:"title"`
	StringMapData map[string]exportEntry `json:"string_map_data"`
}

type export struct {
	SavedCollections []exportItem `json:"saved_saved_collections"`
}

// Parser reads the official saved-collections export and extracts the posts
// of the configured collection.
type Parser struct {
	conf   *structures.Config
	logger providers.Logger
}

func NewParser(conf *structures.Config, logger providers.Logger) *Parser {
	return &Parser{conf: conf, logger: logger}
}

// Posts returns the posts of the configured collection in export order.
// The export lists a "Collection" header item followed by its posts until
// the next header. A missing or unreadable export file fails the run.
func (p *Parser) Posts() ([]Post, error) {
	data, err := os.ReadFile(p.conf.Input.CollectionsPath)
	if err != nil {
		return nil, fmt.Errorf("read collections export: %w", err)
	}

	var exp export
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("decode collections export %s: %w", p.conf.Input.CollectionsPath, err)
	}

	posts := extractPosts(&exp, p.conf.Input.CollectionName)
	if len(posts) == 0 {
		p.logger.Warnf(providers.TypeApp, "Collection %q not found or empty in %s",
			p.conf.Input.CollectionName, p.conf.Input.CollectionsPath)
	} else {
		p.logger.Infof(providers.TypeApp, "Extracted %d posts from collection %q",
			len(posts), p.conf.Input.CollectionName)
	}
	return posts, nil
}

func extractPosts(exp *export, collectionName string) []Post {
	var posts []Post
	inTarget := false

	for _, item := range exp.SavedCollections {
		if item.Title == "Collection" {
			name := item.StringMapData["Name"].Value
			if name == collectionName {
				inTarget = true
			} else if inTarget {
				break
			}
			continue
		}
		if !inTarget {
			continue
		}

		nameData := item.StringMapData["Name"]
		url := nameData.Href
		if url == "" || (!strings.Contains(url, "/p/") && !strings.Contains(url, "/reel/")) {
			continue
		}
		posts = append(posts, Post{
			URL:       url,
			Username:  nameData.Value,
			AddedTime: cast.ToInt64(item.StringMapData["Added Time"].Timestamp),
		})
	}
	return posts
}
