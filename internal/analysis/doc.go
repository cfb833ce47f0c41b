// Package analysis inspects recorded metric series.
//
//   - [Analyze]: power spectrum and dominant frequency of one metric
//   - [NewPortrait]: one metric plotted against another
//
// A sloshing tank shows up as a clear peak in the kinetic energy spectrum:
//
//	spec, err := analysis.Analyze(ke, dt)
//	fmt.Printf("period: %.2fs\n", spec.Period)
package analysis
