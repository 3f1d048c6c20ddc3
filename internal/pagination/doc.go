// Package pagination holds the list-state bookkeeping shared by every paginated
// screen of the dashboard.
//
// Window derives page bounds from a total item count and a page size. Paginator
// adds an in-memory collection on top of a Window and exposes the current page's
// slice. PageNumbers turns a current/total page pair into the compressed list of
// page entries a page selector renders.
//
// None of the types are safe for concurrent mutation; a handle belongs to a
// single owner. Independent handles share no state.
package pagination
