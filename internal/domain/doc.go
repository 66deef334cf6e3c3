// Package domain contains the core circulation model for shelf.
//
// The domain is transport- and persistence-agnostic: it does not depend on JSON
// encoding, the TUI, or the filesystem. Infra/adapters map into/from these types.
package domain
