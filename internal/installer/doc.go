// Package installer copies a context bundle into a target directory. It
// recreates the bundle's context/ tree under <target>/context, overwriting
// same-named files, and creates or appends to <target>/AGENTS.md. The copy is
// best-effort: there is no rollback of files already written when a later
// step fails.
package installer
