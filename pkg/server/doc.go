// Package server provides the HTTP surface of mci's serve mode.
//
// The server exposes the tool set of a schema document over plain HTTP:
//
//	GET /tools       filtered tool set as JSON
//	GET /validation  latest validation result
//	GET /healthz     liveness probe
//	GET /metrics     Prometheus exposition
//
// The schema is reloaded when the document changes on disk (debounced
// fsnotify watch) and optionally on a cron schedule, since toolset files
// and PATH contents can drift without the document itself changing. A
// reload that fails keeps the last good tool set serving and surfaces the
// failure through /validation and the reload metrics.
package server
