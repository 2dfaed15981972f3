// Package transform holds reversible byte transforms chained into a pipeline.
// The report store uses it to compress, and optionally seal, records at rest.
package transform

// Transform is one reversible stage. Reverse(Apply(b)) must return b.
type Transform interface {
	Apply(data []byte) ([]byte, error)
	Reverse(data []byte) ([]byte, error)
}

// identity stores records as plain JSON, for stores meant to be inspected
// with external bbolt tooling.
type identity struct{}

func NewIdentityTransform() Transform                { return identity{} }
func (identity) Apply(data []byte) ([]byte, error)   { return data, nil }
func (identity) Reverse(data []byte) ([]byte, error) { return data, nil }
