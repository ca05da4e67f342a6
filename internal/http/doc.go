// Package http exposes the post query service as a read-only JSON API.
//
// Routes:
//   - Posts: /posts, /posts/{slug}, /posts/{slug}/html, /posts/{slug}/related
//   - Taxonomy: /categories, /categories/{slug}/posts, /tags, /tags/{slug}/posts
//   - Corpus: /stats, /archive
//   - Cache: GET /cache reports slot status, DELETE /cache invalidates
//   - Metrics: /metrics when a collector is wired
//
// Host applications can mount API.Routes under their own router.
package http
