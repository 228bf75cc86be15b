// Package boltstore persists subjects, settings and the progress log in an
// embedded bbolt database. A *Store satisfies quota.ProgressLookup, so it can
// be handed straight to the engine.
//
// Progress keys are "<subject>/<time>/<id>" with a fixed-width UTC time, so a
// cursor seek answers a range query in key order.
package boltstore
