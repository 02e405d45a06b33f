// Package search coordinates the combined station and broadcast list.
//
// A Controller derives a Query from the navigation parameters, turns user
// events (typing, the sort toggle, clearing) into assembly cycles, and
// publishes each finished cycle onto a View, re-rendering only the list
// regions. Cycles run as tea.Cmds and report back through CycleDoneMsg; every
// cycle carries a generation number and only the latest one is published.
package search
