// Package router provides Navigator implementations.
//
// PrintRouter writes the navigation target to a writer; BrowserRouter opens
// it in the web frontend with the platform URL opener.
package router
