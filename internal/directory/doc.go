// Package directory fetches paginated entity collections from the dummyjson
// REST API.
//
// Two collections are exposed: the product catalog (offered by the wizard as
// "experience levels") and the user directory (offered as "preferred
// departments"). Each call retrieves one page addressed by a 0-based page
// index and a page size; the client translates that into the limit/skip query
// the API expects and maps the response envelope into a Page of entity
// records.
//
// # Errors
//
// Every failure is an *APIError carrying an ErrorType. Transport failures are
// classified (timeout, DNS, connection refused), non-2xx responses carry the
// status code, and malformed bodies are parse errors. Network errors and 5xx
// responses are retried with exponential backoff, bounded by MaxRetries and
// the caller's context.
//
// # Example
//
//	client := directory.NewClient("https://dummyjson.com")
//	page, err := client.FetchProducts(ctx, 0, 10)
//	if err != nil {
//	    fmt.Println(directory.ShortMessage(err))
//	}
package directory
