// Package domain contains the core domain entities shared across packages.
// These types describe outcomes of watch runs and are intentionally free of
// infrastructure concerns.
package domain
