//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binLint  = "golangci-lint"
	binGofmt = "gofmt"
)

// sourceDirs are the trees Fmt checks; _examples and bin stay out.
var sourceDirs = []string{"cmd", "internal", "pkg", "magefiles"}

// Fmt fails when any Go file under sourceDirs needs gofmt.
func Fmt() error {
	out, err := sh.Output(binGofmt, append([]string{"-l"}, sourceDirs...)...)
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("gofmt needed on:\n%s", files)
	}
	return nil
}

// Lint checks formatting, then runs go vet and golangci-lint.
func Lint() error {
	mg.Deps(Fmt)
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV(binLint, "run", "./...")
}
