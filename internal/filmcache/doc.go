// Package filmcache keeps resolved films keyed by TMDB id.
//
// Cache is the read-through/write-through collaborator used by the detail
// fetcher. Layered puts a process-local Memory map in front of an optional
// persistent Store (sqlite, redis or postgres). Store failures are logged and
// swallowed; a cache never changes results, only how fast they arrive. Nop is
// the collaborator to use when caching is off.
package filmcache
