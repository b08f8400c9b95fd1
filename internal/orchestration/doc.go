// Package orchestration drives the sequential and parallel primality runs for
// each candidate and aggregates their outcome into a Report. It decouples the
// driver from presentation via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
