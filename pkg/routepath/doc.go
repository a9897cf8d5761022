// Package routepath normalizes request paths and scans them segment by
// segment.
//
// CanonicalizePath turns an incoming request path into the form the resource
// tree matches against. Scanner then walks the canonical path one segment at
// a time. A Scanner is an immutable value: every advancing operation returns
// a new Scanner, so a matcher that wants to try another alternative simply
// keeps using the value it had before.
package routepath
