//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "searchnav"
	binaryDir  = "bin"
	cmdDir     = "./cmd/searchnav"
)

// Build compiles the searchnav binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", binaryPath(), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, binaryPath())
}

// Demo builds the binary and runs a search followed by a return to the entry
// state against a throwaway data directory.
func Demo() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "searchnav-demo-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	return sh.RunV(binaryPath(),
		"--config-dir", filepath.Join(dir, "config"),
		"--data-dir", filepath.Join(dir, "data"),
		"journal", "/search?query=cats&nonFree=true", "/")
}

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}
