// Package textutil provides small text helpers shared by the classifier and
// the renderers: free-text cleanup for platform descriptions, rune-aware
// truncation for table cells, and identifier list formatting.
package textutil
