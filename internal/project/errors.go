// Package project orchestrates installing the documentation boilerplate
// into a target project: directory creation, core document deployment,
// fixed-name template installation, and manifest bookkeeping.
package project

import "errors"

// Sentinel errors for installation.
var (
	// ErrNoDeployer indicates the installer was built without a deployer.
	ErrNoDeployer = errors.New("project: deployer required")

	// ErrNoManifest indicates the installer was built without a manifest manager.
	ErrNoManifest = errors.New("project: manifest manager required")

	// ErrProjectRootRequired indicates no target project path was given.
	ErrProjectRootRequired = errors.New("project: project root required")
)
