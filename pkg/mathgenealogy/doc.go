// Package mathgenealogy fetches and parses records from the Mathematics
// Genealogy Project (https://www.mathgenealogy.org).
//
// The package has three layers:
//
//   - [Client] performs HTTP requests with caching and automatic retries.
//   - [ParseRecord] extracts a [Record] from a genealogy page.
//   - [Resolver] crawls advisor/student links concurrently and assembles
//     a [genealogy.Graph] from the fetched records.
//
// Typical usage:
//
//	client := mathgenealogy.NewClient(store, "", 24*time.Hour)
//	resolver := mathgenealogy.NewResolver(client)
//	graph, err := resolver.Resolve(ctx, []int{18231}, mathgenealogy.Options{
//	    IncludeAncestors: true,
//	})
//
// All types are safe for concurrent use unless noted otherwise.
package mathgenealogy
