// Package fedsearch embeds the federated search engine in a Go program.
//
// Records come from a Valkey/Redis store, a YAML fixture file, or any custom
// Provider. Every query fans out to one adapter per entity type, fuzzy-matches
// the candidates and merges them into one ranked, faceted page.
//
//	client, _ := fedsearch.New(ctx,
//	    fedsearch.WithValkey("localhost:6379", ""),
//	    fedsearch.WithTrending("robotics", "career night"),
//	)
//	defer client.Close()
//
//	resp, _ := client.Search(ctx, fedsearch.SearchRequest{
//	    Query:   "robots",
//	    Types:   []string{"presentation", "event"},
//	    Filters: map[string]string{"status": "active"},
//	})
//	for _, r := range resp.Results {
//	    fmt.Println(r.Type, r.Title, r.URL)
//	}
//
// For local work, WithFixtures reads records from a YAML file instead of a store.
package fedsearch
