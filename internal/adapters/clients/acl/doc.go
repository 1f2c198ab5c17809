// Package acl keeps the remote quote service's wire format out of the domain.
//
// The remote source speaks JSON arrays of {"text","category"} objects. The
// adapter in this package decodes those into [domain.Quote] values, maps
// transport and status failures onto domain errors, and exposes itself as a
// best-effort health check.
//
// Nothing here validates quotes. A candidate with blank fields is handed to
// the application layer unchanged and skipped there, so the same rules apply
// to remote, imported and user-entered quotes.
//
// # Error mapping
//
// Every failure that means "the remote could not give us an answer" becomes
// a [domain.UnavailableError]:
//
//	| Condition                          | Domain error      |
//	|------------------------------------|-------------------|
//	| circuit open, retries exhausted    | UnavailableError  |
//	| transport failure                  | UnavailableError  |
//	| 404                                | NotFoundError     |
//	| 400, 422                           | ValidationError   |
//	| 429, 5xx, anything else            | UnavailableError  |
//
// The sync engine swallows all of them; the mapping only matters for logs
// and for the manual sync endpoint.
package acl
