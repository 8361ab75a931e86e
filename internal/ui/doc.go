// Package ui holds the color themes shared by the line-oriented output and
// the dashboard. Callers read colors through the Color* helpers so that
// --no-color, NO_COLOR and PRIMESCAN_THEME apply everywhere.
package ui
