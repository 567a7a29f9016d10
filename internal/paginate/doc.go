// Package paginate implements an on-demand page accumulator for remote
// collections.
//
// A Loader starts empty and disabled. Enabling it fetches page 0; every later
// page is requested explicitly (the wizard does so when a dropdown's end-of-list
// sentinel scrolls into view). Pages are appended in order, the total reported
// by the server decides when the collection is exhausted, and at most one fetch
// is ever in flight.
//
// Synchronous callers use Load and RequestMore. Event-loop callers split the
// work so the fetch runs off the UI goroutine:
//
//	t, ok := loader.Begin()
//	if ok {
//	    return func() tea.Msg {
//	        page, err := loader.Fetch(ctx, t)
//	        return pageMsg{ticket: t, page: page, err: err}
//	    }
//	}
//
// and apply the result with Complete or Fail. Reset bumps a generation
// counter so results from before the reset are dropped.
package paginate
