// Package domain holds the model types, collaborator interfaces and
// sentinel errors shared across the application. It depends on no
// adapter package; adapters depend on it.
package domain
