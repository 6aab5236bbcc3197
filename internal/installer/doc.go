// Package installer orchestrates the installation pipeline: platform
// detection, artifact and manifest download, checksum verification, archive
// extraction, and the final copy into the install prefix.
//
// Control flow is strictly linear and synchronous; any step's failure
// aborts the whole run after the reporter renders a stage-specific message.
// No step is retried. Tool-fallback chains are resolved into strategy
// values up front, before any network traffic.
//
// The scratch directory policy is explicit: it is removed after a
// successful install and retained on failure so the operator can inspect
// whatever was downloaded or extracted.
package installer
