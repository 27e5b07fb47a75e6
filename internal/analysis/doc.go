// Package analysis provides offline tools for recorded debris runs.
//
// The package works on the aggregate series a run stores:
//
//   - [Spectrum]: power spectrum of a sampled series
//   - [DominantFrequency]: strongest non-DC component
//   - [DecayTime]: when a series last exceeded a fraction of its peak
//   - [ScatterToASCII]: terminal scatter plot of particle positions
//
// # Spotting Bounce Resonance
//
// Debris settling on the ground bounces at a rate set by gravity and
// elasticity; it shows up as a spectral peak in the kinetic energy
// series:
//
//	freqs, power := analysis.Spectrum(energySeries, dt)
//	f := analysis.DominantFrequency(energySeries, dt)
package analysis
