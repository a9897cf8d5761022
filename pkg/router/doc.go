// Package router implements the resource tree of civilian.
//
// A resource tree is built once at startup from declarations, each of which
// extends a parent resource by a literal segment or by a path parameter and
// optionally maps the new resource to a handler id:
//
//	params, _ := pathparam.NewMap(customerID)
//	b := router.NewBuilder(params)
//	b.AddPath("/customers", "customers.list")
//	b.AddPath("/customers/{customerId}/details", "customers.details")
//	tree, err := b.Build()
//
// The built tree is immutable and safe for concurrent use. Matching walks it
// by recursive descent with full backtracking:
//
//	m := tree.Match("/customers/42/details")
//	// m.Complete == true, m.Resource.HandlerID() == "customers.details"
//	// pathparam.ValueOf[int](m.Values, customerID) == 42
//
// At every resource a literal child is tried before any path parameter
// child, and path parameter children are tried in declaration order. When
// a descent fails deeper in the tree, the next alternative at the nearest
// level that still has one is tried.
//
// Routes run the other way: Resource.Route returns a Route that renders the
// resource's path once every path parameter on it has a value.
//
//	route := m.Resource.Route()
//	route.SetPathParam(customerID, 42)
//	url, _ := route.Build() // "/customers/42/details"
//
// Router wraps a tree with path canonicalization, URL generation by handler
// id and a chain of matcher middleware.
package router
