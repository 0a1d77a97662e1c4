//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for fleetops using Mage.
//
// Usage:
//
//	mage build       Compile fleetops binary to bin/
//	mage test:all    Run all tests
//	mage test:race   Run all tests with the race detector
//	mage test:cover  Write coverage.out and print a summary
//	mage fmt         List files that need gofmt
//	mage lint        Run fmt, go vet and golangci-lint
//	mage serve       Build and run the dashboard server
//	mage stats       Print Go LOC and seed record counts
//	mage clean       Remove build artifacts
//	mage install     Install fleetops to GOPATH/bin
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "fleetops"
	binaryDir  = "bin"
	cmdDir     = "./cmd/fleetops"
)

// ldflags stamps the version from FLEETOPS_VERSION or the latest git tag.
func ldflags() string {
	v := os.Getenv("FLEETOPS_VERSION")
	if v == "" {
		out, err := sh.Output("git", "describe", "--tags", "--always")
		if err != nil {
			return ""
		}
		v = strings.TrimPrefix(out, "v")
	}
	return "-X main.version=" + v
}

// Build compiles the fleetops binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if lf := ldflags(); lf != "" {
		args = append(args, "-ldflags", lf)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Serve builds the binary and runs the dashboard server in the foreground.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "serve", "--verbose")
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverFile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
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
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
