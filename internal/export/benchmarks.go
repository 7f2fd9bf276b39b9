package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"instarecipe/internal/models"
	"instarecipe/internal/providers"
	"instarecipe/internal/slug"
)

// WriteBenchmarks writes one side-by-side comparison file per post that has
// results from enough models, plus a summary with per-model timing stats.
// Files live under a timestamped version directory so reruns never clobber
// an earlier review round; existing comparison files are left untouched
// because reviewers annotate them in place.
func (w *Writer) WriteBenchmarks(records map[string]*models.PostRecord) error {
	if w.conf.Site.BenchmarksDir == "" {
		return nil
	}
	minModels := w.conf.Site.MinBenchmarkModels
	if minModels <= 0 {
		minModels = 2
	}

	versionDir := filepath.Join(w.conf.Site.BenchmarksDir, w.version)
	if err := os.MkdirAll(versionDir, 0755); err != nil {
		return fmt.Errorf("create benchmarks dir: %w", err)
	}

	urls := make([]string, 0, len(records))
	for u := range records {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	written := 0
	eligible := make([]*models.PostRecord, 0, len(urls))
	for _, u := range urls {
		rec := records[u]
		results := currentResults(rec)
		if len(results) < minModels {
			continue
		}
		eligible = append(eligible, rec)

		name := fmt.Sprintf("%s-%s_comparison.md", slug.PostID(rec.URL), slug.Title(results[0].recipe.Title))
		path := filepath.Join(versionDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		if err := os.WriteFile(path, []byte(comparisonMarkdown(rec, results)), 0644); err != nil {
			return fmt.Errorf("write benchmark %s: %w", path, err)
		}
		written++
	}

	summary := summaryMarkdown(eligible)
	if err := os.WriteFile(filepath.Join(versionDir, "summary.md"), []byte(summary), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.conf.Site.BenchmarksDir, "summary.md"), []byte(summary), 0644); err != nil {
		return fmt.Errorf("write top-level summary: %w", err)
	}

	if written > 0 {
		w.logger.Infof(providers.TypeStore, "Wrote %d benchmark files to %s", written, versionDir)
	}
	return nil
}

type modelResult struct {
	model  string
	snap   *models.ResultSnapshot
	recipe *models.Recipe
}

func currentResults(rec *models.PostRecord) []modelResult {
	names := make([]string, 0, len(rec.Results))
	for model := range rec.Results {
		names = append(names, model)
	}
	sort.Strings(names)

	var out []modelResult
	for _, model := range names {
		h := rec.Results[model]
		if h.Current == nil || h.Current.Data == nil {
			continue
		}
		out = append(out, modelResult{model: model, snap: h.Current, recipe: h.Current.Data})
	}
	return out
}

func comparisonMarkdown(rec *models.PostRecord, results []modelResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Vergleich: %s\n\n", results[0].recipe.Title)
	fmt.Fprintf(&b, "Quelle: %s\n\n", rec.URL)

	if rec.CleanedCaption != "" {
		b.WriteString("## Caption\n\n```\n")
		b.WriteString(rec.CleanedCaption)
		b.WriteString("\n```\n\n")
	}

	for _, r := range results {
		fmt.Fprintf(&b, "## %s\n\n", r.model)
		fmt.Fprintf(&b, "- Titel: %s\n", r.recipe.Title)
		fmt.Fprintf(&b, "- Verarbeitungszeit: %.2fs\n", r.snap.ProcessingTime)
		if r.snap.Timestamp != "" {
			fmt.Fprintf(&b, "- Zeitpunkt: %s\n", r.snap.Timestamp)
		}
		b.WriteString("\n### Zutaten\n\n")
		for _, grp := range r.recipe.Ingredients {
			if grp.GroupTitle != "" {
				fmt.Fprintf(&b, "**%s**\n\n", grp.GroupTitle)
			}
			for _, ing := range grp.Items {
				if ing.Quantity != "" {
					fmt.Fprintf(&b, "- %s %s\n", ing.Quantity, ing.Name)
				} else {
					fmt.Fprintf(&b, "- %s\n", ing.Name)
				}
			}
			b.WriteString("\n")
		}
		if len(r.recipe.Steps) > 0 {
			b.WriteString("### Zubereitung\n\n")
			for i, step := range r.recipe.Steps {
				fmt.Fprintf(&b, "%d. %s\n", i+1, step)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Bewertung\n\n")
	b.WriteString("- [ ] Zutaten vollständig\n")
	b.WriteString("- [ ] Mengen korrekt\n")
	b.WriteString("- [ ] Schritte vollständig\n")
	b.WriteString("- Bestes Modell: \n")
	return b.String()
}

func summaryMarkdown(records []*models.PostRecord) string {
	stats := models.ComputeModelStats(records)

	var b strings.Builder
	b.WriteString("# Modellvergleich\n\n")
	fmt.Fprintf(&b, "Rezepte im Vergleich: %d\n\n", len(records))
	b.WriteString("| Modell | Rezepte | Ø Zeit | Min | Max |\n")
	b.WriteString("|--------|---------|--------|-----|-----|\n")
	for _, s := range stats {
		fmt.Fprintf(&b, "| %s | %d | %.2fs | %.2fs | %.2fs |\n",
			s.Model, s.Count, s.AverageTime, s.MinTime, s.MaxTime)
	}
	return b.String()
}
