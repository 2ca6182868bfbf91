// Package releasetag applies a uniform release tag across every repository of the fleet.
package releasetag
