//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withEnv("CGO_ENABLED=1"), withStream())
	return err
}

// Runs the packages that do not need a GPU or a display.
func (Test) Core() error {
	_, err := executeCmd("go", withArgs("test", "./engine/core/...", "./engine/bubble/...", "./engine/noise/...", "./engine/cursor/...", "./engine/config/..."), withStream())
	return err
}
