// Package classes registers the built-in Foundation, AppKit, and NeXTSTEP
// class and struct catalog with the root typedstream package. Importing it
// for its side effects is enough:
//
//	import _ "github.com/dgelessus-go/typedstream/classes"
//
// Every type here is a plain decoded-value struct; none of it is executable
// Cocoa/AppKit behavior, just the field layout each class's version(s) wrote
// to a typedstream archive.
package classes
