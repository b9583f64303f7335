package classes

import (
	"fmt"

	ts "github.com/dgelessus-go/typedstream"
)

// NSColorKind selects which of NSColor's value shapes is populated.
type NSColorKind int32

const (
	NSColorCalibratedRGBA NSColorKind = 1
	NSColorDeviceRGBA     NSColorKind = 2
	NSColorCalibratedWA   NSColorKind = 3
	NSColorDeviceWA       NSColorKind = 4
	NSColorDeviceCMYKA    NSColorKind = 5
	NSColorNamed          NSColorKind = 6
)

type NSColorRGBA struct {
	Red, Green, Blue, Alpha float32
}

type NSColorWA struct {
	White, Alpha float32
}

type NSColorCMYKA struct {
	Cyan, Magenta, Yellow, Black, Alpha float32
}

type NSColorNamedValue struct {
	Group string
	Name  string
	Color *NSColor
}

// NSColor holds one of NSColorRGBA, NSColorWA, NSColorCMYKA, or
// NSColorNamedValue in Value, selected by Kind.
type NSColor struct {
	Kind  NSColorKind
	Value any
}

func contributeNSColor(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	c, ok := self.Value.(*NSColor)
	if !ok {
		return fmt.Errorf("classes: NSColor contribution on %T", self.Value)
	}
	kindRaw, err := u.DecodeValueOfType("c")
	if err != nil {
		return err
	}
	n, err := asInt64(kindRaw)
	if err != nil {
		return err
	}
	c.Kind = NSColorKind(n)

	switch c.Kind {
	case NSColorCalibratedRGBA, NSColorDeviceRGBA:
		vals, err := u.DecodeValuesOfTypes("f", "f", "f", "f")
		if err != nil {
			return err
		}
		red, err := asFloat32(vals[0])
		if err != nil {
			return err
		}
		green, err := asFloat32(vals[1])
		if err != nil {
			return err
		}
		blue, err := asFloat32(vals[2])
		if err != nil {
			return err
		}
		alpha, err := asFloat32(vals[3])
		if err != nil {
			return err
		}
		c.Value = NSColorRGBA{Red: red, Green: green, Blue: blue, Alpha: alpha}
	case NSColorCalibratedWA, NSColorDeviceWA:
		vals, err := u.DecodeValuesOfTypes("f", "f")
		if err != nil {
			return err
		}
		white, err := asFloat32(vals[0])
		if err != nil {
			return err
		}
		alpha, err := asFloat32(vals[1])
		if err != nil {
			return err
		}
		c.Value = NSColorWA{White: white, Alpha: alpha}
	case NSColorDeviceCMYKA:
		vals, err := u.DecodeValuesOfTypes("f", "f", "f", "f", "f")
		if err != nil {
			return err
		}
		cyan, err := asFloat32(vals[0])
		if err != nil {
			return err
		}
		magenta, err := asFloat32(vals[1])
		if err != nil {
			return err
		}
		yellow, err := asFloat32(vals[2])
		if err != nil {
			return err
		}
		black, err := asFloat32(vals[3])
		if err != nil {
			return err
		}
		alpha, err := asFloat32(vals[4])
		if err != nil {
			return err
		}
		c.Value = NSColorCMYKA{Cyan: cyan, Magenta: magenta, Yellow: yellow, Black: black, Alpha: alpha}
	case NSColorNamed:
		vals, err := u.DecodeValuesOfTypes("NSString", "NSString", "NSColor")
		if err != nil {
			return err
		}
		group, err := nsStringValue(vals[0])
		if err != nil {
			return err
		}
		name, err := nsStringValue(vals[1])
		if err != nil {
			return err
		}
		namedColor, ok := ts.AsKnown(vals[2])
		if !ok {
			return fmt.Errorf("classes: NSColor named value color is not a known NSColor")
		}
		colorPtr, ok := namedColor.(*NSColor)
		if !ok {
			return fmt.Errorf("classes: NSColor named value color is %T, not NSColor", namedColor)
		}
		c.Value = NSColorNamedValue{Group: group, Name: name, Color: colorPtr}
	default:
		return fmt.Errorf("classes: unhandled NSColor kind: %d", c.Kind)
	}
	return nil
}

// NSFont is a font reference: a property-list-encoded name, a point size,
// and four bytes of flags whose meaning was never documented upstream.
type NSFont struct {
	Name         string
	Size         float32
	FlagsUnknown [4]byte
}

func contributeNSFont(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	f, ok := self.Value.(*NSFont)
	if !ok {
		return fmt.Errorf("classes: NSFont contribution on %T", self.Value)
	}
	name, err := u.DecodePropertyList()
	if err != nil {
		return err
	}
	s, ok := name.(string)
	if !ok {
		return fmt.Errorf("classes: font name must be a string, not %T", name)
	}
	f.Name = s

	size, err := u.DecodeValueOfType("f")
	if err != nil {
		return err
	}
	f.Size, err = asFloat32(size)
	if err != nil {
		return err
	}

	for i := 0; i < 4; i++ {
		v, err := u.DecodeValueOfType("c")
		if err != nil {
			return err
		}
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		f.FlagsUnknown[i] = byte(n)
	}
	return nil
}

// NSCustomObject is a nib placeholder naming a class to instantiate, with an
// optional already-archived object filling that role.
type NSCustomObject struct {
	ClassName string
	Object    any
}

func contributeNSCustomObject(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	o, ok := self.Value.(*NSCustomObject)
	if !ok {
		return fmt.Errorf("classes: NSCustomObject contribution on %T", self.Value)
	}
	vals, err := u.DecodeValuesOfTypes("NSString", "@")
	if err != nil {
		return err
	}
	className, err := nsStringValue(vals[0])
	if err != nil {
		return err
	}
	o.ClassName = className
	o.Object = vals[1]
	return nil
}

// NSCustomResource names a resource (typically an image) to be looked up by
// class and name rather than archived inline.
type NSCustomResource struct {
	ClassName    string
	ResourceName string
}

func contributeNSCustomResource(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	r, ok := self.Value.(*NSCustomResource)
	if !ok {
		return fmt.Errorf("classes: NSCustomResource contribution on %T", self.Value)
	}
	vals, err := u.DecodeValuesOfTypes("NSString", "NSString")
	if err != nil {
		return err
	}
	className, err := nsStringValue(vals[0])
	if err != nil {
		return err
	}
	resourceName, err := nsStringValue(vals[1])
	if err != nil {
		return err
	}
	r.ClassName = className
	r.ResourceName = resourceName
	return nil
}

// NSResponder is the root of the event-handling chain underlying every
// NSView.
type NSResponder struct {
	NextResponder any
}

func (r *NSResponder) responder() *NSResponder { return r }

type hasResponder interface{ responder() *NSResponder }

func contributeNSResponder(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hr, ok := self.Value.(hasResponder)
	if !ok {
		return fmt.Errorf("classes: NSResponder contribution on %T", self.Value)
	}
	next, err := u.DecodeValueOfType("@")
	if err != nil {
		return err
	}
	hr.responder().NextResponder = next
	return nil
}

func makeNSRect(x, y, width, height float32) NSRect {
	return NSRect{Origin: NSPoint{X: x, Y: y}, Size: NSSize{Width: width, Height: height}}
}

// NSView is a rectangular region of a window, with a superview/subview tree.
type NSView struct {
	NSResponder
	Flags                  uint32
	Subviews               []any
	RegisteredDraggedTypes []string
	Frame                  NSRect
	Bounds                 NSRect
	Superview              any
	ContentView            any
}

func (v *NSView) view() *NSView { return v }

type hasView interface{ view() *NSView }

func contributeNSView(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hv, ok := self.Value.(hasView)
	if !ok {
		return fmt.Errorf("classes: NSView contribution on %T", self.Value)
	}
	v := hv.view()

	flagsRaw, err := u.DecodeValueOfType("i")
	if err != nil {
		return err
	}
	flags, err := asInt64(flagsRaw)
	if err != nil {
		return err
	}
	v.Flags = uint32(flags)

	vals, err := u.DecodeValuesOfTypes("NSArray", "@", "@", "NSSet", "f", "f", "f", "f", "f", "f", "f", "f")
	if err != nil {
		return err
	}
	subviews, obj2, obj3, draggedTypes := vals[0], vals[1], vals[2], vals[3]
	if obj2 != nil {
		return fmt.Errorf("classes: NSView unknown object 2 is not nil")
	}
	if obj3 != nil {
		return fmt.Errorf("classes: NSView unknown object 3 is not nil")
	}
	subviewElems, err := nsArrayElements(subviews)
	if err != nil {
		return err
	}
	v.Subviews = subviewElems

	draggedElems, err := nsSetElements(draggedTypes)
	if err != nil {
		return err
	}
	v.RegisteredDraggedTypes = make([]string, len(draggedElems))
	for i, e := range draggedElems {
		s, err := nsStringValue(e)
		if err != nil {
			return err
		}
		v.RegisteredDraggedTypes[i] = s
	}

	frameX, err := asFloat32(vals[4])
	if err != nil {
		return err
	}
	frameY, err := asFloat32(vals[5])
	if err != nil {
		return err
	}
	frameW, err := asFloat32(vals[6])
	if err != nil {
		return err
	}
	frameH, err := asFloat32(vals[7])
	if err != nil {
		return err
	}
	boundsX, err := asFloat32(vals[8])
	if err != nil {
		return err
	}
	boundsY, err := asFloat32(vals[9])
	if err != nil {
		return err
	}
	boundsW, err := asFloat32(vals[10])
	if err != nil {
		return err
	}
	boundsH, err := asFloat32(vals[11])
	if err != nil {
		return err
	}
	v.Frame = makeNSRect(frameX, frameY, frameW, frameH)
	v.Bounds = makeNSRect(boundsX, boundsY, boundsW, boundsH)

	superview, err := u.DecodeValueOfType("@")
	if err != nil {
		return err
	}
	v.Superview = superview

	obj6, err := u.DecodeValueOfType("@")
	if err != nil {
		return err
	}
	if obj6 != nil {
		return fmt.Errorf("classes: NSView unknown object 6 is not nil")
	}

	contentView, err := u.DecodeValueOfType("@")
	if err != nil {
		return err
	}
	v.ContentView = contentView

	obj8, err := u.DecodeValueOfType("@")
	if err != nil {
		return err
	}
	if obj8 != nil {
		return fmt.Errorf("classes: NSView unknown object 8 is not nil")
	}
	return nil
}

// NSControl adds a target cell to NSView.
type NSControl struct {
	NSView
	Int1  int32
	Bool1 bool
	Cell  any
}

func (c *NSControl) control() *NSControl { return c }

type hasControl interface{ control() *NSControl }

func contributeNSControl(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hc, ok := self.Value.(hasControl)
	if !ok {
		return fmt.Errorf("classes: NSControl contribution on %T", self.Value)
	}
	c := hc.control()
	vals, err := u.DecodeValuesOfTypes("i", "c", "c", "NSCell")
	if err != nil {
		return err
	}
	int1, err := asInt64(vals[0])
	if err != nil {
		return err
	}
	c.Int1 = int32(int1)
	c.Bool1, err = boolFromChar(vals[1])
	if err != nil {
		return err
	}
	int3, err := asInt64(vals[2])
	if err != nil {
		return err
	}
	if int3 != 0 {
		return fmt.Errorf("classes: NSControl unknown int 3 is not 0: %d", int3)
	}
	c.Cell = vals[3]
	return nil
}

// NSCell is the drawable/interactive content of a control.
type NSCell struct {
	FlagsUnknown [2]uint32
	TitleOrImage any
	Font         any
}

func (c *NSCell) cell() *NSCell { return c }

type hasCell interface{ cell() *NSCell }

func contributeNSCell(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	hc, ok := self.Value.(hasCell)
	if !ok {
		return fmt.Errorf("classes: NSCell contribution on %T", self.Value)
	}
	c := hc.cell()

	flagVals, err := u.DecodeValuesOfTypes("i", "i")
	if err != nil {
		return err
	}
	flags1, err := asInt64(flagVals[0])
	if err != nil {
		return err
	}
	flags2, err := asInt64(flagVals[1])
	if err != nil {
		return err
	}
	c.FlagsUnknown = [2]uint32{uint32(flags1), uint32(flags2)}

	vals, err := u.DecodeValuesOfTypes("@", "NSFont", "@", "@")
	if err != nil {
		return err
	}
	if vals[2] != nil {
		return fmt.Errorf("classes: NSCell unknown object 3 is not nil")
	}
	if vals[3] != nil {
		return fmt.Errorf("classes: NSCell unknown object 4 is not nil")
	}
	c.TitleOrImage = vals[0]
	c.Font = vals[1]
	return nil
}

// NSActionCell adds a target/action pair to NSCell.
type NSActionCell struct {
	NSCell
	Tag         int32
	Action      []byte
	Target      any
	ControlView any
}

func (a *NSActionCell) actionCell() *NSActionCell { return a }

type hasActionCell interface{ actionCell() *NSActionCell }

func contributeNSActionCell(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	ha, ok := self.Value.(hasActionCell)
	if !ok {
		return fmt.Errorf("classes: NSActionCell contribution on %T", self.Value)
	}
	a := ha.actionCell()

	vals, err := u.DecodeValuesOfTypes("i", ":")
	if err != nil {
		return err
	}
	tag, err := asInt64(vals[0])
	if err != nil {
		return err
	}
	a.Tag = int32(tag)
	a.Action, err = asBytes(vals[1])
	if err != nil {
		return err
	}

	a.Target, err = u.DecodeValueOfType("@")
	if err != nil {
		return err
	}
	a.ControlView, err = u.DecodeValueOfType("@")
	return err
}

// NSButtonType enumerates the button behaviors NSButtonCell.Type encodes in
// its low 24 bits.
type NSButtonType int32

const (
	NSButtonTypeMomentaryLight       NSButtonType = 0
	NSButtonTypePushOnPushOff        NSButtonType = 1
	NSButtonTypeToggle               NSButtonType = 2
	NSButtonTypeSwitch               NSButtonType = 3
	NSButtonTypeRadio                NSButtonType = 4
	NSButtonTypeMomentaryChange      NSButtonType = 5
	NSButtonTypeOnOff                NSButtonType = 6
	NSButtonTypeMomentaryPushIn      NSButtonType = 7
	NSButtonTypeAccelerator          NSButtonType = 8
	NSButtonTypeMultiLevelAccelerator NSButtonType = 9
)

// NSButtonCell adds button-specific rendering state to NSActionCell.
type NSButtonCell struct {
	NSActionCell
	ShortsUnknown [2]int16
	Type          NSButtonType
	TypeFlags     int32
	Flags         uint32
	KeyEquivalent string
	Image1        any
	Image2OrFont  any
}

func contributeNSButtonCell(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	b, ok := self.Value.(*NSButtonCell)
	if !ok {
		return fmt.Errorf("classes: NSButtonCell contribution on %T", self.Value)
	}

	vals, err := u.DecodeValuesOfTypes("s", "s", "i", "i")
	if err != nil {
		return err
	}
	short1, err := asInt64(vals[0])
	if err != nil {
		return err
	}
	short2, err := asInt64(vals[1])
	if err != nil {
		return err
	}
	buttonType, err := asInt64(vals[2])
	if err != nil {
		return err
	}
	flags, err := asInt64(vals[3])
	if err != nil {
		return err
	}

	b.ShortsUnknown = [2]int16{int16(short1), int16(short2)}
	if b.ShortsUnknown != [2]int16{200, 25} && b.ShortsUnknown != [2]int16{400, 75} {
		return fmt.Errorf("classes: unexpected value for NSButtonCell unknown shorts: %v", b.ShortsUnknown)
	}
	b.Type = NSButtonType(buttonType & 0xffffff)
	b.TypeFlags = int32(uint32(buttonType) & 0xff000000)
	b.Flags = uint32(flags)

	tailVals, err := u.DecodeValuesOfTypes("NSString", "NSString", "@", "@", "@")
	if err != nil {
		return err
	}
	string1, keyEquivalent, image1, image2OrFont, unknownObject := tailVals[0], tailVals[1], tailVals[2], tailVals[3], tailVals[4]

	if string1 != nil {
		s, err := nsStringValue(string1)
		if err != nil {
			return err
		}
		if s != "" {
			return fmt.Errorf("classes: NSButtonCell unknown string 1 is not nil or empty: %q", s)
		}
	}

	b.KeyEquivalent, err = nsStringValue(keyEquivalent)
	if err != nil {
		return err
	}
	b.Image1 = image1
	b.Image2OrFont = image2OrFont
	if unknownObject != nil {
		return fmt.Errorf("classes: NSButtonCell unknown object is not nil")
	}
	return nil
}

// NSEventModifierFlags mirrors the high-bit device-independent modifier
// flags of an NSEvent, as stored on an NSMenuItem key equivalent.
type NSEventModifierFlags uint32

const (
	NSEventModifierCapsLock NSEventModifierFlags = 1 << 16
	NSEventModifierShift    NSEventModifierFlags = 1 << 17
	NSEventModifierControl  NSEventModifierFlags = 1 << 18
	NSEventModifierOption   NSEventModifierFlags = 1 << 19
	NSEventModifierCommand  NSEventModifierFlags = 1 << 20
)

// NSMenuItem is one entry of an NSMenu.
type NSMenuItem struct {
	Menu            any
	Flags           uint32
	Title           string
	KeyEquivalent   string
	ModifierFlags   NSEventModifierFlags
	State           int32
	OnStateImage    any
	OffStateImage   any
	MixedStateImage any
	Action          []byte
	Int2            int32
	Target          any
	Submenu         any
}

func contributeNSMenuItem(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	mi, ok := self.Value.(*NSMenuItem)
	if !ok {
		return fmt.Errorf("classes: NSMenuItem contribution on %T", self.Value)
	}

	menu, err := u.DecodeValueOfType("NSMenu")
	if err != nil {
		return err
	}
	mi.Menu = menu

	vals, err := u.DecodeValuesOfTypes("i", "NSString", "NSString", "I", "I", "i", "@", "@", "@", "@", ":", "i", "@")
	if err != nil {
		return err
	}
	flags, err := asInt64(vals[0])
	if err != nil {
		return err
	}
	title, err := nsStringValue(vals[1])
	if err != nil {
		return err
	}
	keyEquivalent, err := nsStringValue(vals[2])
	if err != nil {
		return err
	}
	modifierFlags, err := asInt64(vals[3])
	if err != nil {
		return err
	}
	int1, err := asInt64(vals[4])
	if err != nil {
		return err
	}
	state, err := asInt64(vals[5])
	if err != nil {
		return err
	}
	obj1 := vals[6]
	action, err := asBytes(vals[10])
	if err != nil {
		return err
	}
	int2, err := asInt64(vals[11])
	if err != nil {
		return err
	}
	obj2 := vals[12]

	if int1 != 0x7fffffff {
		return fmt.Errorf("classes: NSMenuItem unknown int 1 is not 0x7fffffff: %d", int1)
	}
	if obj1 != nil {
		return fmt.Errorf("classes: NSMenuItem unknown object 1 is not nil")
	}
	if obj2 != nil {
		return fmt.Errorf("classes: NSMenuItem unknown object 2 is not nil")
	}

	mi.Flags = uint32(flags)
	mi.Title = title
	mi.KeyEquivalent = keyEquivalent
	mi.ModifierFlags = NSEventModifierFlags(modifierFlags)
	mi.State = int32(state)
	mi.OnStateImage = vals[7]
	mi.OffStateImage = vals[8]
	mi.MixedStateImage = vals[9]
	mi.Action = action
	mi.Int2 = int32(int2)

	mi.Target, err = u.DecodeValueOfType("@")
	if err != nil {
		return err
	}
	mi.Submenu, err = u.DecodeValueOfType("NSMenu")
	return err
}

// NSMenu is an ordered list of NSMenuItem.
type NSMenu struct {
	Title      string
	Items      []*NSMenuItem
	Identifier *string
}

func contributeNSMenu(u *ts.Unarchiver, version int32, self *ts.KnownInstance) error {
	m, ok := self.Value.(*NSMenu)
	if !ok {
		return fmt.Errorf("classes: NSMenu contribution on %T", self.Value)
	}

	vals, err := u.DecodeValuesOfTypes("i", "NSString", "NSArray", "NSString")
	if err != nil {
		return err
	}
	unknownInt, err := asInt64(vals[0])
	if err != nil {
		return err
	}
	if unknownInt != 0 {
		return fmt.Errorf("classes: NSMenu unknown int is not 0: %d", unknownInt)
	}
	m.Title, err = nsStringValue(vals[1])
	if err != nil {
		return err
	}

	itemElems, err := nsArrayElements(vals[2])
	if err != nil {
		return err
	}
	m.Items = make([]*NSMenuItem, len(itemElems))
	for i, e := range itemElems {
		raw, ok := ts.AsKnown(e)
		if !ok {
			return fmt.Errorf("classes: NSMenu item %d is not a known instance", i)
		}
		item, ok := raw.(*NSMenuItem)
		if !ok {
			return fmt.Errorf("classes: NSMenu items must be instances of NSMenuItem, not %T", raw)
		}
		m.Items[i] = item
	}

	if vals[3] == nil {
		m.Identifier = nil
	} else {
		id, err := nsStringValue(vals[3])
		if err != nil {
			return err
		}
		m.Identifier = &id
	}
	return nil
}

func init() {
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSColor", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSColor, NewInstance: func() any { return &NSColor{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSFont", Base: "NSObject", Versions: []int32{21, 30}, Contribute: contributeNSFont, NewInstance: func() any { return &NSFont{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSCustomObject", Base: "NSObject", Versions: []int32{41}, Contribute: contributeNSCustomObject, NewInstance: func() any { return &NSCustomObject{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSCustomResource", Base: "NSObject", Versions: []int32{41}, Contribute: contributeNSCustomResource, NewInstance: func() any { return &NSCustomResource{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSResponder", Base: "NSObject", Versions: []int32{0}, Contribute: contributeNSResponder, NewInstance: func() any { return &NSResponder{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSView", Base: "NSResponder", Versions: []int32{41}, Contribute: contributeNSView, NewInstance: func() any { return &NSView{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSControl", Base: "NSView", Versions: []int32{41}, Contribute: contributeNSControl, NewInstance: func() any { return &NSControl{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSCell", Base: "NSObject", Versions: []int32{65}, Contribute: contributeNSCell, NewInstance: func() any { return &NSCell{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSActionCell", Base: "NSCell", Versions: []int32{17}, Contribute: contributeNSActionCell, NewInstance: func() any { return &NSActionCell{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSButtonCell", Base: "NSActionCell", Versions: []int32{63}, Contribute: contributeNSButtonCell, NewInstance: func() any { return &NSButtonCell{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSMenuItem", Base: "NSObject", Versions: []int32{505, 671}, Contribute: contributeNSMenuItem, NewInstance: func() any { return &NSMenuItem{} }})
	ts.RegisterClass(ts.ClassDescriptor{Name: "NSMenu", Base: "NSObject", Versions: []int32{204}, Contribute: contributeNSMenu, NewInstance: func() any { return &NSMenu{} }})
}
