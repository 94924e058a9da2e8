//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the window with the default bubble preset.
func (Run) Bubble() error {
	return runBubble("-preset", "bubble")
}

// Opens the window with the classic preset.
func (Run) Classic() error {
	return runBubble("-preset", "classic")
}

// Renders a few hundred frames without a window, useful on CI machines.
func (Run) Headless() error {
	return runBubble("-headless", "-frames", "300")
}

func runBubble(args ...string) error {
	fmt.Println("Run bubble...")
	_, err := executeCmd("go", withArgs(append([]string{"run", "."}, args...)...), withStream())
	return err
}
