// Package strategy provides built-in green-time allocation strategies.
//
// Allocation strategies split one signal cycle across lanes according to
// their densities. The package includes two built-in strategies:
//
//   - Proportional: floor plus truncated proportional share, then a single
//     reconciliation pass (the default)
//   - LargestRemainder: floor plus proportional share where the truncated
//     seconds go to the lanes with the largest fractional remainders
//
// # Strategy Selection Guide
//
// Proportional:
//   - Reference behavior; outputs are reproducible bit-for-bit
//   - Rounding loss lands on a single lane (the densest one)
//   - Degenerate floors (n*min > cycle) are computed as-is and may go negative
//
// LargestRemainder:
//   - Spreads rounding loss one second at a time
//   - All-zero densities split the pool evenly instead of favoring lane 0
//   - Falls back to Proportional when the floors exceed the cycle
//
// Custom strategies can be implemented by satisfying the types.AllocationStrategy interface.
package strategy
