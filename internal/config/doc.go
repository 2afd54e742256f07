// Package config loads the host configuration.
//
// Configuration is read from inertia.yaml (or .json/.toml) in the working
// directory, or from an explicit file, and every key can be overridden from
// the environment with the INERTIA_ prefix (dots become underscores):
//
//	addr: ":8080"
//	id: app
//	title: "%s - Acme"
//	pages: pages.yaml
//	assets:
//	  manifest: dist/manifest.json
//	  prefix: /build/
//	  entrypoints: [app.css, app.js]
//	  watch: true
//	progress:
//	  delay: 250ms
//	  color: "#29d"
//	live:
//	  enabled: true
//	metrics:
//	  enabled: true
//
//	INERTIA_ADDR=:9090 INERTIA_ASSETS_WATCH=false inertia serve
package config
