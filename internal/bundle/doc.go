// Package bundle locates the context bundle an install copies from. A bundle
// is a directory holding a context/ tree, an AGENTS.md index and, optionally,
// a bundle.yaml manifest. Bundles are found next to the running executable or
// fetched with a shallow git clone into a temporary directory that the caller
// releases with Close.
package bundle
