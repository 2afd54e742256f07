// Package page defines the page payload shared by the server renderer, the
// mounted app and the router.
//
// A payload names the component to display, carries its props and records the
// URL it was produced for. Payloads cross the server/client boundary in two
// forms: plain JSON (the X-Inertia response body) and the embedded form, a
// JSON document encoded with standard base64 and stored in the data-page
// attribute of the element with id "{id}-data":
//
//	<div id="app"> ... </div>
//	<div id="app-data" data-page="eyJjb21wb25lbnQiOi..."></div>
//
// Encode and Decode convert between a Page and the attribute value;
// ReadEmbedded and FromDocument locate the element in an HTML document.
package page
