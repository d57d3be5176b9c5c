// Package interpreter scrapes agent replies for structured booking hints.
//
// Every function here is pure: it takes reply text and returns a typed optional
// or collection result. The controller combines them into a chip offer once per
// reply.
package interpreter
