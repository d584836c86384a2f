// Package clock negotiates sample rates against the codec's reference clock.
//
// The chip runs from either an external master clock (MCLK) or the serial
// frame clock (LRCLK). With MCLK the reachable rates depend on which of the
// 32 kHz, 44.1 kHz and 48 kHz families the MCLK frequency divides into; with
// LRCLK every rate of 32 kHz and above is reachable. For a concrete rate,
// LookupFS selects the sample-rate band and LookupMCS the MCLK multiplier
// code programmed into the PLL register.
package clock
