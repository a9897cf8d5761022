// Package errors provides coded, actionable errors for civilian.
//
// Every configuration mistake in a route table (a duplicated parameter name,
// a malformed wildcard pattern, two handlers mapped to the same resource)
// fails fast at build time with an *Error carrying:
//   - a unique code (e.g. "E105") registered with a message and detail
//   - a category (config, route, build, path, cli)
//   - an optional hint on how to fix it
//
// Parse misses during matching are never reported through this package:
// they are ordinary "no value" results that let the matcher try the next
// alternative.
//
// # Usage
//
//	err := errors.New("E105").
//	    WithDetail(`resource "/customers" is mapped to "a" and "b"`).
//	    WithSuggestion("Remove one of the two declarations")
//
//	fmt.Println(err.Format())
//	// ERROR E105: Duplicate handler mapping
//	//
//	//   resource "/customers" is mapped to "a" and "b"
//	//
//	//   Hint: Remove one of the two declarations
package errors
