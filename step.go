package remap

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

var (
	intType     = reflect.TypeOf(0)
	stringType  = reflect.TypeOf("")
	boolType    = reflect.TypeOf(true)
	float64Type = reflect.TypeOf(0.0)
	float32Type = reflect.TypeOf(float32(0))
)

// step is one compiled per-field instruction of a routine.
type step interface {
	exec(srcPtr, dstPtr unsafe.Pointer)
	plan() *PlanStep
}

// marked flags a written target field in the explicit-set marker.
type marked struct {
	marker *Marker
	index  int
}

func (m marked) mark(dstPtr unsafe.Pointer) {
	if m.marker == nil || m.index == -1 {
		return
	}
	_ = m.marker.Set(dstPtr, m.index, true)
}

func markedFor(target *Record, field *Field) marked {
	if !target.TracksSet() {
		return marked{index: -1}
	}
	return marked{marker: target.marker, index: field.markerIndex}
}

// setGuard passes only source fields flagged as explicitly set; a zero
// guard passes everything.
type setGuard struct {
	marker *Marker
	index  int
}

func (g setGuard) pass(srcPtr unsafe.Pointer) bool {
	if g.marker == nil {
		return true
	}
	return g.marker.IsSet(srcPtr, g.index)
}

type copier func(srcPtr, dstPtr unsafe.Pointer)

// directCopier copies between same declared types, with fast paths for
// builtin scalar kinds.
func directCopier(src, dst *xunsafe.Field) copier {
	switch src.Type {
	case intType:
		return func(s, d unsafe.Pointer) {
			dst.SetInt(d, src.Int(s))
		}
	case stringType:
		return func(s, d unsafe.Pointer) {
			dst.SetString(d, src.String(s))
		}
	case boolType:
		return func(s, d unsafe.Pointer) {
			dst.SetBool(d, src.Bool(s))
		}
	case float64Type:
		return func(s, d unsafe.Pointer) {
			dst.SetFloat64(d, src.Float64(s))
		}
	case float32Type:
		return func(s, d unsafe.Pointer) {
			dst.SetFloat32(d, src.Float32(s))
		}
	}
	return func(s, d unsafe.Pointer) {
		dst.SetValue(d, src.Value(s))
	}
}

// wrapCopier copies a value typed source into a pointer typed target.
func wrapCopier(src, dst *xunsafe.Field) copier {
	elem := dst.Type.Elem()
	return func(s, d unsafe.Pointer) {
		value := reflect.New(elem)
		value.Elem().Set(reflect.ValueOf(src.Value(s)))
		dst.SetValue(d, value.Interface())
	}
}

// derefCopier copies a pointer typed source into a value typed target;
// callers guard against nil.
func derefCopier(src, dst *xunsafe.Field) copier {
	elem := src.Type.Elem()
	switch elem {
	case intType:
		return func(s, d unsafe.Pointer) {
			dst.SetInt(d, *(*int)(src.ValuePointer(s)))
		}
	case stringType:
		return func(s, d unsafe.Pointer) {
			dst.SetString(d, *(*string)(src.ValuePointer(s)))
		}
	case boolType:
		return func(s, d unsafe.Pointer) {
			dst.SetBool(d, *(*bool)(src.ValuePointer(s)))
		}
	case float64Type:
		return func(s, d unsafe.Pointer) {
			dst.SetFloat64(d, *(*float64)(src.ValuePointer(s)))
		}
	}
	return func(s, d unsafe.Pointer) {
		dst.SetValue(d, reflect.NewAt(elem, src.ValuePointer(s)).Elem().Interface())
	}
}

// lookupCopier selects a copier for the declared source and target shapes.
func lookupCopier(src, dst *xunsafe.Field) copier {
	if src.Type == dst.Type {
		return directCopier(src, dst)
	}
	if dst.Type.Kind() == reflect.Ptr && src.Type == dst.Type.Elem() {
		return wrapCopier(src, dst)
	}
	if src.Type.Kind() == reflect.Ptr && src.Type.Elem() == dst.Type {
		return derefCopier(src, dst)
	}
	return func(s, d unsafe.Pointer) {
		dst.SetValue(d, src.Value(s))
	}
}

// assignStep covers direct assignment, optionally guarded by the source
// explicit-set marker.
type assignStep struct {
	source   *Field
	target   *Field
	strategy Strategy
	copy     copier
	guard    setGuard
	marked   marked
}

func (s *assignStep) exec(srcPtr, dstPtr unsafe.Pointer) {
	if !s.guard.pass(srcPtr) {
		return
	}
	s.copy(srcPtr, dstPtr)
	s.marked.mark(dstPtr)
}

func (s *assignStep) plan() *PlanStep {
	return &PlanStep{Target: s.target.Name, Strategy: s.strategy.String(), Source: s.source.Name}
}

// assignIfNotNilStep assigns a nullable source to a non null target,
// leaving the target default in place on nil.
type assignIfNotNilStep struct {
	source *Field
	target *Field
	isNil  func(srcPtr unsafe.Pointer) bool
	copy   copier
	marked marked
}

func (s *assignIfNotNilStep) exec(srcPtr, dstPtr unsafe.Pointer) {
	if s.isNil(srcPtr) {
		return
	}
	s.copy(srcPtr, dstPtr)
	s.marked.mark(dstPtr)
}

func (s *assignIfNotNilStep) plan() *PlanStep {
	return &PlanStep{Target: s.target.Name, Strategy: StrategyAssignIfNotNil.String(), Source: s.source.Name}
}

// nilChecker builds a nil test for the declared field shape; value
// shaped fields flagged nullable by tag can never hold nil.
func nilChecker(field *xunsafe.Field) func(ptr unsafe.Pointer) bool {
	switch field.Type.Kind() {
	case reflect.Slice:
		return func(ptr unsafe.Pointer) bool {
			return *(*unsafe.Pointer)(field.Pointer(ptr)) == nil
		}
	case reflect.Ptr:
		return field.IsNil
	}
	return func(unsafe.Pointer) bool {
		return false
	}
}

// callStep converts a nested record through a registered routine.
type callStep struct {
	source       *Field
	target       *Field
	routine      *Routine
	guard        setGuard
	nilPropagate bool
	srcPtrDecl   bool
	dstPtrDecl   bool
	nilValue     interface{}
	marked       marked
}

func (s *callStep) exec(srcPtr, dstPtr unsafe.Pointer) {
	if !s.guard.pass(srcPtr) {
		return
	}
	if s.nilPropagate && s.source.xField.IsNil(srcPtr) {
		s.target.xField.SetValue(dstPtr, s.nilValue)
		s.marked.mark(dstPtr)
		return
	}
	elemPtr := s.source.xField.Pointer(srcPtr)
	if s.srcPtrDecl {
		elemPtr = xunsafe.DerefPointer(elemPtr)
	}
	if s.dstPtrDecl {
		value := reflect.New(s.routine.dst.Type)
		s.routine.run(elemPtr, unsafe.Pointer(value.Pointer()))
		s.target.xField.SetValue(dstPtr, value.Interface())
	} else {
		s.routine.run(elemPtr, s.target.xField.Pointer(dstPtr))
	}
	s.marked.mark(dstPtr)
}

func (s *callStep) plan() *PlanStep {
	return &PlanStep{Target: s.target.Name, Strategy: StrategyRecurse.String(), Source: s.source.Name}
}

// callListStep converts every sequence element through a registered routine.
type callListStep struct {
	source       *Field
	target       *Field
	routine      *Routine
	strategy     Strategy
	guard        setGuard
	nilPropagate bool
	notNilGuard  bool
	isNil        func(ptr unsafe.Pointer) bool
	srcPtrDecl   bool
	dstPtrDecl   bool
	srcElemPtr   bool
	dstElemPtr   bool
	srcSlice     *xunsafe.Slice
	dstSlice     *xunsafe.Slice
	dstListType  reflect.Type
	nilValue     interface{}
	marked       marked
}

func (s *callListStep) exec(srcPtr, dstPtr unsafe.Pointer) {
	if !s.guard.pass(srcPtr) {
		return
	}
	if s.source.AllowNone && s.isNil(srcPtr) {
		if s.notNilGuard {
			return
		}
		if s.nilPropagate {
			s.target.xField.SetValue(dstPtr, s.nilValue)
			s.marked.mark(dstPtr)
		}
		return
	}
	listPtr := s.source.xField.Pointer(srcPtr)
	if s.srcPtrDecl {
		listPtr = xunsafe.DerefPointer(listPtr)
	}
	size := s.srcSlice.Len(listPtr)
	out := reflect.New(s.dstListType)
	out.Elem().Set(reflect.MakeSlice(s.dstListType, size, size))
	outPtr := unsafe.Pointer(out.Pointer())
	for i := 0; i < size; i++ {
		itemPtr := s.srcSlice.PointerAt(listPtr, uintptr(i))
		if s.srcElemPtr {
			if *(*unsafe.Pointer)(itemPtr) == nil {
				continue
			}
			itemPtr = xunsafe.DerefPointer(itemPtr)
		}
		if s.dstElemPtr {
			value := reflect.New(s.routine.dst.Type)
			s.routine.run(itemPtr, unsafe.Pointer(value.Pointer()))
			s.dstSlice.SetValueAt(outPtr, i, value.Interface())
		} else {
			s.routine.run(itemPtr, s.dstSlice.PointerAt(outPtr, uintptr(i)))
		}
	}
	if s.dstPtrDecl {
		s.target.xField.SetValue(dstPtr, out.Interface())
	} else {
		s.target.xField.SetValue(dstPtr, out.Elem().Interface())
	}
	s.marked.mark(dstPtr)
}

func (s *callListStep) plan() *PlanStep {
	return &PlanStep{Target: s.target.Name, Strategy: s.strategy.String(), Source: s.source.Name}
}

// produceStep invokes a producer function origin.
type produceStep struct {
	target      *Field
	fn          reflect.Value
	fnType      reflect.Type
	takesSource bool
	takesPtr    bool
	wrap        bool
	srcType     reflect.Type
	marked      marked
}

func (s *produceStep) exec(srcPtr, dstPtr unsafe.Pointer) {
	var args []reflect.Value
	if s.takesSource {
		source := reflect.NewAt(s.srcType, srcPtr)
		if !s.takesPtr {
			source = source.Elem()
		}
		args = []reflect.Value{source}
	}
	out := s.fn.Call(args)[0]
	if s.wrap {
		value := reflect.New(s.target.DeclaredType().Elem())
		value.Elem().Set(out)
		out = value
	}
	s.target.xField.SetValue(dstPtr, out.Interface())
	s.marked.mark(dstPtr)
}

func (s *produceStep) plan() *PlanStep {
	return &PlanStep{Target: s.target.Name, Strategy: StrategyProduce.String(), Source: s.fnType.String()}
}

// setDefaultStep applies the target field default ahead of guarded steps.
type setDefaultStep struct {
	target  *Field
	produce func() interface{}
}

func (s *setDefaultStep) exec(_, dstPtr unsafe.Pointer) {
	s.target.xField.SetValue(dstPtr, s.produce())
}

func (s *setDefaultStep) plan() *PlanStep {
	return &PlanStep{Target: s.target.Name, Strategy: StrategyDefault.String()}
}
