// Package ui is the Bubble Tea terminal interface for the todos client.
//
// The model keeps a local copy of the server's list. Toggle, delete, and
// clear-completed apply to the local copy immediately and issue the API
// call in a command. A failed toggle reverts only that entry's done flag,
// so mutations that interleaved with it survive; a failed delete or
// clear-completed restores the full list snapshot taken before the
// removal. Every failure shows an error, cleared on the next success.
package ui
