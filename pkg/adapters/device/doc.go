// Package device adapts the host machine to the device-facing ports of core:
// a file-backed camera, a directory media library, clipboard sharing and
// policy-driven permissions.
package device
