package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// tagOpts is the parsed form of a `hwio:"..."` struct tag.
type tagOpts struct {
	offset    uint32
	hasOffset bool
	bank      int
	size      int
	reset     uint32
	romask    uint32
	readonly  bool
	writeonly bool
	rcb       bool
	wcb       bool
}

func parseTag(tag string) (tagOpts, error) {
	var opts tagOpts
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, val, hasval := strings.Cut(opt, "=")
		switch key {
		case "offset":
			n, err := strconv.ParseUint(val, 0, 32)
			if err != nil {
				return opts, fmt.Errorf("bad offset %q: %v", val, err)
			}
			opts.offset = uint32(n)
			opts.hasOffset = true
		case "bank":
			n, err := strconv.Atoi(val)
			if err != nil {
				return opts, fmt.Errorf("bad bank %q: %v", val, err)
			}
			opts.bank = n
		case "size":
			n, err := strconv.ParseUint(val, 0, 32)
			if err != nil {
				return opts, fmt.Errorf("bad size %q: %v", val, err)
			}
			opts.size = int(n)
		case "reset":
			n, err := strconv.ParseUint(val, 0, 32)
			if err != nil {
				return opts, fmt.Errorf("bad reset %q: %v", val, err)
			}
			opts.reset = uint32(n)
		case "romask":
			n, err := strconv.ParseUint(val, 0, 32)
			if err != nil {
				return opts, fmt.Errorf("bad romask %q: %v", val, err)
			}
			opts.romask = uint32(n)
		case "readonly":
			opts.readonly = true
		case "writeonly":
			opts.writeonly = true
		case "rcb":
			opts.rcb = true
		case "wcb":
			opts.wcb = true
		default:
			_ = hasval
			return opts, fmt.Errorf("unknown hwio tag option %q", opt)
		}
	}
	return opts, nil
}

// MustInitRegs initializes all the hwio-tagged fields of the bank struct:
// names, reset values, access flags, and read/write callbacks. Callbacks are
// bound by name: a field FOO with the rcb (resp. wcb) option must have a
// companion method ReadFOO(val uint32) uint32 (resp. WriteFOO(old, val
// uint32)) on the bank. Panics on malformed banks, which are programming
// errors.
func MustInitRegs(bank any) {
	if err := initRegs(bank); err != nil {
		panic(err)
	}
}

func initRegs(bank any) error {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bank)
	}
	bv := v.Elem()
	bt := bv.Type()

	for i := 0; i < bt.NumField(); i++ {
		field := bt.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("hwio: field %s.%s: %v", bt.Name(), field.Name, err)
		}

		switch ptr := bv.Field(i).Addr().Interface().(type) {
		case *Reg32:
			ptr.Name = field.Name
			ptr.Value = opts.reset
			ptr.RoMask = opts.romask
			if opts.readonly {
				ptr.Flags |= ReadOnlyFlag
			}
			if opts.writeonly {
				ptr.Flags |= WriteOnlyFlag
			}
			if opts.rcb {
				m := v.MethodByName("Read" + field.Name)
				if !m.IsValid() {
					return fmt.Errorf("hwio: %s: missing method Read%s", bt.Name(), field.Name)
				}
				cb, ok := m.Interface().(func(uint32) uint32)
				if !ok {
					return fmt.Errorf("hwio: %s: Read%s has wrong signature", bt.Name(), field.Name)
				}
				ptr.ReadCb = cb
			}
			if opts.wcb {
				m := v.MethodByName("Write" + field.Name)
				if !m.IsValid() {
					return fmt.Errorf("hwio: %s: missing method Write%s", bt.Name(), field.Name)
				}
				cb, ok := m.Interface().(func(uint32, uint32))
				if !ok {
					return fmt.Errorf("hwio: %s: Write%s has wrong signature", bt.Name(), field.Name)
				}
				ptr.WriteCb = cb
			}
		case *Mem:
			ptr.Name = field.Name
			if opts.readonly {
				ptr.Flags |= ReadOnlyFlag
			}
			if ptr.Data == nil && opts.size > 0 {
				ptr.Data = make([]byte, opts.size)
			}
		default:
			return fmt.Errorf("hwio: field %s.%s: unsupported type %T", bt.Name(), field.Name, ptr)
		}
	}
	return nil
}

type bankReg struct {
	offset uint32
	regPtr any
}

func bankGetRegs(bank any, bankNum int) ([]bankReg, error) {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bank)
	}
	bv := v.Elem()
	bt := bv.Type()

	var regs []bankReg
	for i := 0; i < bt.NumField(); i++ {
		field := bt.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s.%s: %v", bt.Name(), field.Name, err)
		}
		// Fields without an offset are initialized but not mapped.
		if !opts.hasOffset || opts.bank != bankNum {
			continue
		}
		regs = append(regs, bankReg{offset: opts.offset, regPtr: bv.Field(i).Addr().Interface()})
	}
	return regs, nil
}
