//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the GLSL shader sources into SPIR-V binaries.
func (Build) Shaders() error {
	return buildShaders()
}

func buildShaders() error {
	if _, err := executeCmd("glslc", withArgs("shaders/triangle.vert", "-o", "shaders/triangle.vert.spv"), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("glslc", withArgs("shaders/triangle.frag", "-o", "shaders/triangle.frag.spv"), withStream()); err != nil {
		return err
	}
	return nil
}
