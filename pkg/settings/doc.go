// Package settings holds the host settings bundle and resolves it into typed
// engine inputs.
//
// A [Settings] value is what a user edits: plain strings, numbers and
// booleans, readable from TOML, YAML or JSON-with-comments files. It is never
// trusted. [Settings.Resolve] maps every field to the engine's types and
// substitutes the documented default for anything it does not recognize:
//
//	timeScale   unknown name       → monthly
//	zoomLevel   off-grid value     → nearest of 0.5, 1, 1.5, 2 (1 if invalid)
//	rowDensity  unknown name       → normal
//	groupBy     unknown field      → epic
//
// [Settings.Problems] lists the substitutions so hosts can warn about them.
//
// # Precedence
//
// Values are layered: [Default] first, then a settings file, then whatever
// the host applies on top (CLI flags, an HTTP request body). [Load] decodes
// a file over the defaults, so keys absent from the file keep their default.
package settings
