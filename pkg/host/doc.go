// Package host connects the gate to the file system and the terminal:
// documents are loaded from disk, edits are applied to buffers and
// persisted atomically, and side documents are shown in a console panel.
package host
