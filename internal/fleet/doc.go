// Package fleet models the set of repositories a forksync run operates on.
//
// It defines the immutable RepositoryDescriptor, the insertion-ordered
// DescriptorSet loaded from a YAML manifest, and the small abstractions
// (GitExecutor, FileSystem, Reporter) shared by the synchronizer and the
// release tagger.
package fleet
