// Package pathparam defines typed path parameters.
//
// A PathParam recognizes one semantic value in a request path, such as a
// customer id, a date spread over three segments or the rest of the path,
// and formats the value back into path segments. Parse and BuildPath are
// inverses: a value built by BuildPath parses back to an equal value.
//
// Parse never reports errors. A parameter that does not recognize its input
// returns ok == false together with the scanner it was given, so the caller
// can try the next alternative from the same position.
//
// Parameters are registered by unique name in a Map, which the router
// consults when a route declaration refers to a parameter by name.
package pathparam
