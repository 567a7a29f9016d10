// Package selection holds the value behind a selection dropdown: either one
// optional entity or an ordered set of entities, both keyed by entity id.
package selection

// Keyed is implemented by entities with a stable integer identity.
type Keyed interface {
	Key() int
}
