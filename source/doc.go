// Package source provides built-in density source implementations.
//
// Density sources report the current weight of every lane at an intersection.
// The package includes:
//
//   - Static: Fixed list of densities, replaceable with Update
//   - File: YAML lanes file, re-read on every call
//
// Custom sources can be implemented by satisfying the types.DensitySource interface.
package source
