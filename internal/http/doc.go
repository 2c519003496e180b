// Package http serves the public site on a chi router.
//
// Routes:
//   - GET /                 newest articles across the root
//   - GET /category/{name}  newest articles in one category (404 when empty)
//   - GET /article/*        a single rendered article plus related articles
//   - GET /search?q=        case-insensitive substring search
//   - GET /health           JSON liveness report
//   - GET /static/*         stylesheet, including the code highlighting classes
//
// Every page receives the site globals (categories, current year, site name,
// ads and analytics id) through pageData.
package http
