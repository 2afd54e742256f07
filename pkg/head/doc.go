// Package head coordinates document head tags declared by page content.
//
// A Manager is created once per mounted app. Each piece of page content that
// wants head tags obtains a Provider and calls Update with the tags for its
// current render pass; Disconnect removes them. Every change, and every
// ForceUpdate (issued after each navigation), re-collects the declarations
// of all connected providers into an ordered list of serialized tags:
//
//   - a default <title> from the title callback applied to "", when non-empty
//   - a declared <title> replaces the title slot, its text passed through the
//     title callback
//   - tags carrying a head key (the inertia attribute, see Key) replace an
//     earlier tag with the same key in place
//   - all other tags are appended in provider order, then declaration order
//
// In server mode the list is produced synchronously and kept for Elements.
// In client mode updates are debounced and delivered to the update callback
// so the host can patch the live document head.
package head
