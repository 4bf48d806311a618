// Package docsync provides a documentation synchronization pipeline.
// It downloads a documentation archive, extracts and validates it, grooms
// the markdown (link rewriting, shortcode removal), builds an index, and
// republishes the tree, guarded by a cooldown gate and a lock file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, yaml/, compress/).
package docsync
