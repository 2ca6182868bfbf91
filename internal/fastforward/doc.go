// Package fastforward synchronizes fork repositories with their upstream remotes using fast-forward merges.
package fastforward
