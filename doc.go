// Package typedstream provides a pure Go decoder for the NeXTSTEP/Apple
// Foundation "typedstream" binary archive format, historically produced by
// NXTypedStream and NSArchiver.
//
// The format predates NSKeyedArchiver: objects are archived as a flat,
// ordered sequence of class chains and typed-value groups, with back
// references into a shared-object table rather than keyed dictionaries. It
// appears in old NeXTSTEP/OpenStep resources, .nib files from before Xcode 4,
// and anywhere -[NSArchiver archivedDataWithRootObject:] was used.
//
// This package exposes two layers. [Reader] is the low-level event stream: it
// parses the stream header eagerly, then yields one [Event] at a time via
// [Reader.Next], exactly mirroring the byte-level grammar with one byte of
// lookahead. [Unarchiver] builds on top of a Reader to assemble the event
// stream into class descriptors, objects, arrays, and structs, consulting the
// process-wide class/struct registries to produce concrete Go values where a
// class is known.
//
// # Quick Start
//
//	u, err := typedstream.Open("archive.typedstream")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer u.Close()
//
//	root, err := u.DecodeSingleRoot()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(prettyprint.String(root))
//
// # Known classes
//
// The root package ships with empty class/struct registries so that callers
// needing only the low-level event stream pay no catalog cost. Importing
// [github.com/dgelessus-go/typedstream/classes] for its side effects
// registers the built-in Foundation, AppKit, and NeXTSTEP catalog:
//
//	import _ "github.com/dgelessus-go/typedstream/classes"
//
// Objects of unregistered classes decode as [GenericObject], which carries
// the full wire class chain and (when a superclass is registered) the known
// instance of the nearest known ancestor.
//
// # Sub-packages
//
// [github.com/dgelessus-go/typedstream/oldbplist] decodes the old binary
// property list format used by -[NSArchiver encodePropertyList:], distinct
// from the modern "bplist00" format; [Unarchiver.DecodePropertyList] uses it
// internally for classes such as NSFont.
//
// [github.com/dgelessus-go/typedstream/prettyprint] renders any decoded value
// as an indented multiline string, safely handling cyclic object graphs.
package typedstream
