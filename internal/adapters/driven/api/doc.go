// Package api implements the domain searchers against the finvo REST backend.
//
// Every domain is searched with GET {base}/{path}?search=<text>. Responses
// are Django REST framework pages ({count, next, previous, results}); a bare
// JSON array is accepted as well. Transport failures, timeouts and non-2xx
// answers are classified into domain.ErrNetwork, domain.ErrTimeout and
// domain.ErrServer so the aggregator can treat each as one domain failure.
//
// All searchers created by one Client share its token bucket.
package api
