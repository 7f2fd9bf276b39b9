package render

const postPageTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script type="application/ld+json">{{.JSONLD}}</script>
<style>
body { font-family: system-ui, sans-serif; max-width: 800px; margin: 0 auto; padding: 1rem; color: #222; }
img.thumb { max-width: 100%; border-radius: 8px; }
.tabs { display: flex; gap: 0.5rem; margin: 1rem 0; flex-wrap: wrap; }
.tab-label { padding: 0.4rem 0.8rem; border: 1px solid #ccc; border-radius: 6px; cursor: pointer; }
input.tab-switch { display: none; }
input.tab-switch:checked + .tab-label { background: #2b6cb0; color: #fff; }
.tab-panel { display: none; }
input.tab-switch:checked + .tab-label + .tab-panel { display: block; }
.meta { color: #666; font-size: 0.9rem; }
.group-title { font-weight: 600; margin-top: 0.8rem; }
details.caption { margin-top: 2rem; color: #444; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .ImageRef}}<img class="thumb" src="{{.ImageRef}}" alt="{{.Title}}">{{end}}
<p class="meta"><a href="{{.SourceURL}}">Original auf Instagram</a></p>
<div class="tabs">
{{range $i, $tab := .Tabs}}
<input class="tab-switch" type="radio" name="model" id="tab-{{$i}}"{{if $tab.Active}} checked{{end}}>
<label class="tab-label" for="tab-{{$i}}">{{$tab.Model}}</label>
<div class="tab-panel">
<p class="meta">{{printf "%.2f" $tab.ProcessingTime}}s{{if $tab.Timestamp}} &middot; {{$tab.Timestamp}}{{end}}{{if gt $tab.Versions 1}} &middot; {{$tab.Versions}} Versionen{{end}}</p>
{{with $tab.Recipe}}
{{if .Servings}}<p class="meta">Portionen: {{.Servings}}</p>{{end}}
{{if .PrepTime}}<p class="meta">Vorbereitung: {{.PrepTime}}</p>{{end}}
{{if .CookTime}}<p class="meta">Kochzeit: {{.CookTime}}</p>{{end}}
<h2>Zutaten</h2>
{{range .Ingredients}}
{{if .GroupTitle}}<p class="group-title">{{.GroupTitle}}</p>{{end}}
<ul>
{{range .Items}}<li>{{if .Quantity}}{{.Quantity}} {{end}}{{.Name}}</li>
{{end}}
</ul>
{{end}}
{{if .Steps}}
<h2>Zubereitung</h2>
<ol>
{{range .Steps}}<li>{{.}}</li>
{{end}}
</ol>
{{end}}
{{if .Nutrition}}
<h2>N&auml;hrwerte</h2>
<ul>
{{if .Nutrition.Calories}}<li>Kalorien: {{.Nutrition.Calories}}</li>{{end}}
{{if .Nutrition.Protein}}<li>Protein: {{.Nutrition.Protein}}</li>{{end}}
{{if .Nutrition.Carbs}}<li>Kohlenhydrate: {{.Nutrition.Carbs}}</li>{{end}}
{{if .Nutrition.Fat}}<li>Fett: {{.Nutrition.Fat}}</li>{{end}}
</ul>
{{end}}
{{if .Notes}}
<h2>Notizen</h2>
<ul>
{{range .Notes}}<li>{{.}}</li>
{{end}}
</ul>
{{end}}
{{end}}
</div>
{{end}}
</div>
{{if .Caption}}
<details class="caption">
<summary>Original-Caption</summary>
<p>{{.Caption}}</p>
</details>
{{end}}
</body>
</html>
`

const indexPageTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Rezepte</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 1000px; margin: 0 auto; padding: 1rem; color: #222; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 1rem; }
.card { border: 1px solid #ddd; border-radius: 8px; padding: 0.8rem; }
.card img { width: 100%; border-radius: 6px; }
.models { color: #666; font-size: 0.8rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
</style>
</head>
<body>
<h1>Rezepte</h1>
{{if .Stats}}
<h2>Modelle</h2>
<table>
<tr><th>Modell</th><th>Rezepte</th><th>&Oslash; Zeit</th><th>Min</th><th>Max</th></tr>
{{range .Stats}}
<tr><td>{{.Model}}</td><td>{{.Count}}</td><td>{{printf "%.2f" .AverageTime}}s</td><td>{{printf "%.2f" .MinTime}}s</td><td>{{printf "%.2f" .MaxTime}}s</td></tr>
{{end}}
</table>
{{end}}
<div class="cards">
{{range .Cards}}
<div class="card">
{{if .ImageRef}}<a href="{{.Page}}"><img src="{{.ImageRef}}" alt="{{.Title}}"></a>{{end}}
<h3><a href="{{.Page}}">{{.Title}}</a></h3>
<p class="models">{{range $i, $m := .Models}}{{if $i}}, {{end}}{{$m}}{{end}}</p>
</div>
{{end}}
</div>
</body>
</html>
`
