// Package router is the navigation collaborator of a mounted app.
//
// A Router is initialized once by the app with the initial page, a component
// resolver and a swap handler, and publishes visit lifecycle events:
//
//	EventStart     a visit began
//	EventProgress  the visit reported progress (Detail.Percentage)
//	EventNavigate  the new page is displayed
//	EventFinish    the visit ended (Detail.Completed reports success)
//
// Memory is the in-process implementation used by live sessions and tests.
//
//	r := router.NewMemory()
//	off := r.On(router.EventNavigate, func(d router.Detail) {
//	    log.Println("now at", d.Page.URL)
//	})
//	defer off()
//	err := r.Visit(ctx, next, router.VisitOptions{PreserveState: true})
package router
