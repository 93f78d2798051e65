// Package aristotle embeds the aristotle catalog search engine in a Go
// program, without running the HTTP service.
//
// The client talks to Elasticsearch directly, or keeps a Bleve index in
// memory or on disk:
//
//	client, _ := aristotle.New(ctx, aristotle.WithBleve(""))
//	defer client.Close()
//	_, _ = client.Load(ctx, records)
//
//	res, _ := client.Search(ctx, aristotle.Query{Text: "river", Mode: aristotle.ModeTitle})
//	page, _ := client.Browse(ctx, "coccc:1", aristotle.Page{Size: 10})
//
// Advanced search folds clauses left to right and narrows by collection,
// genre and object format:
//
//	res, _ = client.Advanced(ctx, aristotle.AdvancedQuery{
//	    Clauses: []aristotle.Clause{
//	        {Mode: aristotle.ModeCreator, Text: "smith"},
//	        {Text: "jazz", Operator: "not"},
//	    },
//	    Collection: "music library",
//	    Formats:    aristotle.Formats{Audio: true},
//	})
package aristotle
