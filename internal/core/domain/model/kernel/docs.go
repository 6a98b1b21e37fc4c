// Package kernel provides core domain primitives shared by the parcel, rider and
// network models.
//
// The package includes:
//   - UUID: a value object for rider identifiers, backed by github.com/google/uuid
//   - Random: the injectable randomness port, with a seeded PCG constructor
//   - Clock: the injectable time source
package kernel
