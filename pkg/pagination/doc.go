// Package pagination provides a lazy, forward-only cursor over offset-paginated catalog endpoints.
//
// The catalog service pages with a start offset and a page size and reports the total
// number of matches with every page. An Engine hides that bookkeeping: the consumer
// asks for the next page until the engine reports that it is exhausted.
//
// Example usage:
//
//	engine := pagination.New("browse", fetcher, filters, pagination.WithPageSize(50))
//	for !engine.Exhausted() {
//		items, err := engine.NextPage(ctx)
//		if err != nil {
//			return err // cursor unchanged, calling NextPage again retries the same offset
//		}
//		process(items)
//	}
//
// The engine:
//   - Starts at offset 0 with an unknown total
//   - Marks itself exhausted on an empty page or once start+items >= total
//   - Never issues a request after exhaustion
//   - Leaves the cursor untouched when a fetch fails
//   - Does not retry, cache or prefetch
//
// Engines are not safe for concurrent use. Independent engines, such as the four
// facets of one search, may be driven from separate goroutines.
package pagination
