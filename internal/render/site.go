package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
	"instarecipe/internal/structures"
)

// Renderer writes the static recipe site: one page per post with a tab per
// model, plus an index page with recipe cards and model timing stats.
type Renderer struct {
	conf   *structures.Config
	logger providers.Logger
	images *ImageFetcher

	postTmpl  *template.Template
	indexTmpl *template.Template
}

func NewRenderer(conf *structures.Config, logger providers.Logger, images *ImageFetcher) (*Renderer, error) {
	postTmpl, err := template.New("post").Parse(postPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse post template: %w", err)
	}
	indexTmpl, err := template.New("index").Parse(indexPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Renderer{
		conf:      conf,
		logger:    logger,
		images:    images,
		postTmpl:  postTmpl,
		indexTmpl: indexTmpl,
	}, nil
}

type modelTab struct {
	Model          string
	Recipe         *models.Recipe
	ProcessingTime float64
	Timestamp      string
	Versions       int
	Active         bool
}

type postPage struct {
	Title     string
	SourceURL string
	Caption   template.HTML
	ImageRef  string
	Tabs      []modelTab
	JSONLD    template.JS
}

type indexCard struct {
	Title    string
	Page     string
	ImageRef string
	Models   []string
}

type indexPage struct {
	Cards []indexCard
	Stats []models.ModelStats
}

// RenderPost writes the page for one post. Posts without any current
// result render nothing.
func (r *Renderer) RenderPost(rec *models.PostRecord) error {
	tabs := r.buildTabs(rec)
	if len(tabs) == 0 {
		return nil
	}
	tabs[0].Active = true

	if err := os.MkdirAll(r.conf.Site.OutputDir, 0755); err != nil {
		return fmt.Errorf("create site dir: %w", err)
	}

	base := filenameBase(rec.URL)
	ldBytes, err := json.Marshal(JSONLD(tabs[0].Recipe, rec.ThumbnailURL))
	if err != nil {
		return fmt.Errorf("marshal json-ld: %w", err)
	}

	page := postPage{
		Title:     tabs[0].Recipe.Title,
		SourceURL: rec.URL,
		Caption:   formatCaption(rec.Caption),
		ImageRef:  r.images.Fetch(rec.ThumbnailURL, r.conf.Site.OutputDir, base),
		Tabs:      tabs,
		JSONLD:    template.JS(ldBytes),
	}

	path := filepath.Join(r.conf.Site.OutputDir, base+".html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create page %s: %w", path, err)
	}
	defer f.Close()

	if err := r.postTmpl.Execute(f, page); err != nil {
		return fmt.Errorf("render page %s: %w", path, err)
	}
	r.logger.Debugf(providers.TypeRender, "Rendered %s", path)
	return nil
}

// RenderIndex writes the overview page for all processed posts.
func (r *Renderer) RenderIndex(records map[string]*models.PostRecord) error {
	if err := os.MkdirAll(r.conf.Site.OutputDir, 0755); err != nil {
		return fmt.Errorf("create site dir: %w", err)
	}

	urls := make([]string, 0, len(records))
	recordList := make([]*models.PostRecord, 0, len(records))
	for url, rec := range records {
		urls = append(urls, url)
		recordList = append(recordList, rec)
	}
	sort.Strings(urls)

	var cards []indexCard
	for _, url := range urls {
		rec := records[url]
		tabs := r.buildTabs(rec)
		if len(tabs) == 0 {
			continue
		}
		base := filenameBase(url)
		modelNames := make([]string, len(tabs))
		for i, tab := range tabs {
			modelNames[i] = tab.Model
		}
		cards = append(cards, indexCard{
			Title:    tabs[0].Recipe.Title,
			Page:     base + ".html",
			ImageRef: r.images.Fetch(rec.ThumbnailURL, r.conf.Site.OutputDir, base),
			Models:   modelNames,
		})
	}

	path := filepath.Join(r.conf.Site.OutputDir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer f.Close()

	page := indexPage{Cards: cards, Stats: models.ComputeModelStats(recordList)}
	if err := r.indexTmpl.Execute(f, page); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	r.logger.Infof(providers.TypeRender, "Rendered index with %d recipes", len(cards))
	return nil
}

func (r *Renderer) buildTabs(rec *models.PostRecord) []modelTab {
	modelNames := make([]string, 0, len(rec.Results))
	for model := range rec.Results {
		modelNames = append(modelNames, model)
	}
	sort.Strings(modelNames)

	var tabs []modelTab
	for _, model := range modelNames {
		h := rec.Results[model]
		if h.Current == nil || h.Current.Data == nil {
			continue
		}
		tabs = append(tabs, modelTab{
			Model:          model,
			Recipe:         h.Current.Data,
			ProcessingTime: h.Current.ProcessingTime,
			Timestamp:      h.Current.Timestamp,
			Versions:       len(h.History) + 1,
		})
	}
	return tabs
}

func formatCaption(caption string) template.HTML {
	escaped := template.HTMLEscapeString(strings.TrimSpace(caption))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
