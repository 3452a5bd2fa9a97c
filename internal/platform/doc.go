// Package platform wraps the operating-system details the installer depends
// on: Unix permission bits, which are a no-op on Windows, and locating the
// running executable through any symlinks pointing at it.
package platform
