// Package runtime assembles batches of truths and lies from a set of generators.
package runtime
