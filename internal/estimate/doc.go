// Package estimate forecasts the runtime and output size of a scan from the
// prime number theorem. Forecasts are informational only: the engine never
// consults them to decide when to stop.
package estimate
