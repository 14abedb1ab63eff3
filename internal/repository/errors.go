package repository

import "errors"

// ErrNotFound is returned when a lookup for a single record (a session, a
// course, a cached summary) finds nothing. Services translate it into the
// domain-level app_errors.ErrNotFound, or treat it as a cache miss, so the
// underlying driver error (sql.ErrNoRows, redis.Nil) never leaks upward.
var ErrNotFound = errors.New("repository: not found")
