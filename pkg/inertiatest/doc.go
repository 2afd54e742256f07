// Package inertiatest provides helpers for testing page components.
//
// Render mounts a component server-side and returns its markup and head:
//
//	func TestUsersIndex(t *testing.T) {
//	    res := inertiatest.Render(t, UsersIndex, page.Props{"name": "Ada"})
//	    inertiatest.ExpectContains(t, res, "<li>Ada</li>")
//	    inertiatest.ExpectHead(t, res, "<title inertia>Users</title>")
//	}
//
// Client mounts a component the way a browser would and drives visits
// through an in-memory router:
//
//	c := inertiatest.NewClient(t, reg, &page.Page{Component: "Home", URL: "/"})
//	c.Visit("Users/Index", page.Props{"name": "Ada"})
//	if !strings.Contains(c.HTML(), "Ada") { ... }
package inertiatest
