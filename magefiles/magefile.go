//go:build mage

// Package main provides build targets for the searchnav project using Mage.
//
// Usage:
//
//	mage build        Compile searchnav binary to bin/
//	mage test:all     Run all tests
//	mage test:race    Run all tests with the race detector
//	mage test:cover   Run all tests and write bin/coverage.out
//	mage lint         Run golangci-lint
//	mage vet          Run go vet
//	mage demo         Build, then replay a search through the entry state
//	mage clean        Remove build artifacts
//	mage install      Install searchnav to GOPATH/bin
package main
