package classes

import (
	"fmt"

	ts "github.com/dgelessus-go/typedstream"
)

// NSPoint is a 2D point of single-precision floats.
type NSPoint struct {
	X, Y float32
}

// NSSize is a 2D extent of single-precision floats.
type NSSize struct {
	Width, Height float32
}

// NSRect combines an origin and a size.
type NSRect struct {
	Origin NSPoint
	Size   NSSize
}

// CGPoint is a 2D point of double-precision floats, as used by Core Graphics
// and the AppKit classes archived after it replaced NSPoint internally.
type CGPoint struct {
	X, Y float64
}

// CGSize is a 2D extent of double-precision floats.
type CGSize struct {
	Width, Height float64
}

// CGVector is a 2D displacement of double-precision floats.
type CGVector struct {
	DX, DY float64
}

// CGRect combines an origin and a size.
type CGRect struct {
	Origin CGPoint
	Size   CGSize
}

func asFloat32(v any) (float32, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("classes: expected float value, got %T", v)
	}
	return float32(f), nil
}

func asFloat64(v any) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("classes: expected float value, got %T", v)
	}
	return f, nil
}

func init() {
	ts.RegisterStruct(ts.StructDescriptor{
		Name:        "_NSPoint",
		Fields:      []string{"f", "f"},
		NewInstance: func() any { return &NSPoint{} },
		Assign: func(inst any, i int, value any) error {
			p := inst.(*NSPoint)
			f, err := asFloat32(value)
			if err != nil {
				return err
			}
			switch i {
			case 0:
				p.X = f
			case 1:
				p.Y = f
			}
			return nil
		},
	})

	ts.RegisterStruct(ts.StructDescriptor{
		Name:        "_NSSize",
		Fields:      []string{"f", "f"},
		NewInstance: func() any { return &NSSize{} },
		Assign: func(inst any, i int, value any) error {
			s := inst.(*NSSize)
			f, err := asFloat32(value)
			if err != nil {
				return err
			}
			switch i {
			case 0:
				s.Width = f
			case 1:
				s.Height = f
			}
			return nil
		},
	})

	ts.RegisterStruct(ts.StructDescriptor{
		Name:        "_NSRect",
		Fields:      []string{"{_NSPoint=ff}", "{_NSSize=ff}"},
		NewInstance: func() any { return &NSRect{} },
		Assign: func(inst any, i int, value any) error {
			r := inst.(*NSRect)
			switch i {
			case 0:
				p, ok := value.(*NSPoint)
				if !ok {
					return fmt.Errorf("classes: expected NSPoint, got %T", value)
				}
				r.Origin = *p
			case 1:
				s, ok := value.(*NSSize)
				if !ok {
					return fmt.Errorf("classes: expected NSSize, got %T", value)
				}
				r.Size = *s
			}
			return nil
		},
	})

	ts.RegisterStruct(ts.StructDescriptor{
		Name:        "CGPoint",
		Fields:      []string{"d", "d"},
		NewInstance: func() any { return &CGPoint{} },
		Assign: func(inst any, i int, value any) error {
			p := inst.(*CGPoint)
			f, err := asFloat64(value)
			if err != nil {
				return err
			}
			switch i {
			case 0:
				p.X = f
			case 1:
				p.Y = f
			}
			return nil
		},
	})

	ts.RegisterStruct(ts.StructDescriptor{
		Name:        "CGSize",
		Fields:      []string{"d", "d"},
		NewInstance: func() any { return &CGSize{} },
		Assign: func(inst any, i int, value any) error {
			s := inst.(*CGSize)
			f, err := asFloat64(value)
			if err != nil {
				return err
			}
			switch i {
			case 0:
				s.Width = f
			case 1:
				s.Height = f
			}
			return nil
		},
	})

	ts.RegisterStruct(ts.StructDescriptor{
		Name:        "CGVector",
		Fields:      []string{"d", "d"},
		NewInstance: func() any { return &CGVector{} },
		Assign: func(inst any, i int, value any) error {
			v := inst.(*CGVector)
			f, err := asFloat64(value)
			if err != nil {
				return err
			}
			switch i {
			case 0:
				v.DX = f
			case 1:
				v.DY = f
			}
			return nil
		},
	})

	ts.RegisterStruct(ts.StructDescriptor{
		Name:        "CGRect",
		Fields:      []string{"{CGPoint=dd}", "{CGSize=dd}"},
		NewInstance: func() any { return &CGRect{} },
		Assign: func(inst any, i int, value any) error {
			r := inst.(*CGRect)
			switch i {
			case 0:
				p, ok := value.(*CGPoint)
				if !ok {
					return fmt.Errorf("classes: expected CGPoint, got %T", value)
				}
				r.Origin = *p
			case 1:
				s, ok := value.(*CGSize)
				if !ok {
					return fmt.Errorf("classes: expected CGSize, got %T", value)
				}
				r.Size = *s
			}
			return nil
		},
	})
}
