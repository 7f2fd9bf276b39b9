// seedexport writes a synthetic Instagram saved-collections export, useful
// for trying the pipeline without a real data takeout. The generated posts
// point at real-looking /p/ URLs that the fetcher will of course fail on,
// so combine it with an existing progress file or a stub resolver.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

var usernames = []string{"pastaqueen", "mealprepmax", "veggiekitchen", "schnellekueche", "baketogether"}

type entry struct {
	Href      string `json:"href,omitempty"`
	Value     string `json:"value,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type item struct {
	Title         string           `json:"title"`
	StringMapData map[string]entry `json:"string_map_data"`
}

type export struct {
	SavedCollections []item `json:"saved_saved_collections"`
}

func main() {
	out := flag.String("out", "saved_collections.json", "output file")
	collection := flag.String("collection", "Rezepte", "collection name")
	count := flag.Int("count", 10, "number of posts")
	flag.Parse()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	exp := export{
		SavedCollections: []item{
			{
				Title:         "Collection",
				StringMapData: map[string]entry{"Name": {Value: *collection}},
			},
		},
	}

	base := time.Now().Add(-30 * 24 * time.Hour).Unix()
	for i := 0; i < *count; i++ {
		shortcode := fmt.Sprintf("C%010d", rnd.Int63n(1e10))
		exp.SavedCollections = append(exp.SavedCollections, item{
			Title: "Saved post",
			StringMapData: map[string]entry{
				"Name": {
					Href:  fmt.Sprintf("https://www.instagram.com/p/%s/", shortcode),
					Value: usernames[rnd.Intn(len(usernames))],
				},
				"Added Time": {Timestamp: base + int64(i)*3600},
			},
		})
	}

	data, err := json.MarshalIndent(&exp, "", "    ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedexport: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "seedexport: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d posts to %s (collection %q)\n", *count, *out, *collection)
}
