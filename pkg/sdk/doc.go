// Package hotelsearch provides an embedded Go client for hotel search over
// Elasticsearch, for programs that want the ranking and normalization
// rules of the hotelsearch service without calling its HTTP API.
//
//	client, _ := hotelsearch.New(ctx,
//	    hotelsearch.WithElasticsearch("http://localhost:9200"),
//	    hotelsearch.WithIndex("hotel"),
//	)
//	defer client.Close()
//
//	page, _ := client.Search(ctx, hotelsearch.SearchParams{
//	    Key:      "seaside",
//	    City:     "Shanghai",
//	    Location: "31.21, 121.5",
//	    Page:     1,
//	    Size:     20,
//	})
//	for _, h := range page.Hotels {
//	    fmt.Println(h.Name, h.Distance)
//	}
//
// Facets runs the same predicate as Search and returns the distinct brand,
// city and star rating values; Suggest completes a name prefix.
package hotelsearch
