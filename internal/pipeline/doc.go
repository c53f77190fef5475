// Package pipeline orchestrates the sequential execution of crawl stages.
//
// A crawl is a fixed sequence of stages (categories, similar apps,
// developers), each of which must reach quiescence before the next one
// starts: the similar-apps frontier is only meaningful once every category
// has been traversed. The Runner enforces that ordering at the caller
// level, so the stages themselves need no cross-stage synchronization.
package pipeline
