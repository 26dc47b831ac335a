// Package keysource provides key-down event sources for a shortcuts.Registry:
// a fake for tests, an adapter for bubbletea key messages, and a WebSocket
// bridge for browser front-ends.
package keysource
