// Package testsupport provides fixtures shared by package tests: isolated
// configs, raw flavor records, and a fake Kaltura API server.
package testsupport
