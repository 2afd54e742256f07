// Package server hosts pages over HTTP.
//
// A Server answers page requests in one of two ways. Requests carrying the
// X-Inertia header get the page payload as JSON; all other requests get a
// full HTML document with the page rendered on the server and the payload
// embedded for the client to pick up.
//
//	srv := server.New(server.DefaultConfig(reg.Resolve))
//	srv.Router().Get("/users", func(w http.ResponseWriter, r *http.Request) {
//	    srv.Render(w, r, "Users/Index", page.Props{"users": users})
//	})
//	http.ListenAndServe(":8080", srv)
//
// # Protocol
//
//   - GET requests whose X-Inertia-Version differs from the current asset
//     version get 409 Conflict with X-Inertia-Location, telling the client
//     to do a full reload.
//   - X-Inertia-Partial-Component and X-Inertia-Partial-Data restrict the
//     props of a JSON response when the component matches.
//   - Redirect answers 303 after PUT, PATCH and DELETE so the follow-up
//     request is a GET.
//
// # Live sessions
//
// A client may keep its page mounted on the server over a WebSocket at
// Config.LivePath. Frames are JSON objects with a "type" field:
//
//	→ {"type":"hello","data":"<base64 payload>"}
//	→ {"type":"visit","url":"/users?page=2","preserveState":true}
//	← {"type":"swap","html":"...","page":{...}}
//	← {"type":"head","tags":["<title inertia>Users</title>"]}
//	← {"type":"progress","visible":true,"value":0.45}
//	← {"type":"location","url":"/users"}
//	← {"type":"error","message":"..."}
//
// Visits are answered by routing the target URL through the same handlers
// in JSON mode, then swapping the mounted page. Targets must be local paths.
//
// # Observability
//
// WithMetrics records Prometheus collectors. Requests, renders and live
// visits are traced with the tracer set by WithTracer, or the global otel
// tracer provider.
package server
