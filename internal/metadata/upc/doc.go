// Package upc resolves scanned product codes against a product-lookup
// provider.
//
// Real deployments of these providers differ in both URL layout and
// response shape, so the client walks an ordered candidate list of lookup
// paths, trying bearer-token authentication first and falling back to
// query-parameter authentication when a path rejects the bearer form. The
// first 200 response with a parseable JSON body wins. Field extraction runs
// over an ordered alias table rather than ad hoc branching, and a payload
// that parses but names no film is handed back raw for manual inspection
// instead of being treated as a failure.
package upc
