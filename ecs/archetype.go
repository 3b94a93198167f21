package ecs

import (
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that carries exactly one particular set of component types.
// Slot indices are shared by all columns of the archetype and stay stable until deleted.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
	}

	for idx, typ := range types {
		if !registry.Registered(typ) {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[idx] = registry.getFactory(typ)()
	}

	return a
}

// spawn appends one value per column; components must already be sorted like a.types.
func (a *Archetype) spawn(components []any) uint32 {
	var index int
	for idx, comp := range components {
		index = a.columns[idx].Append(comp)
		if index < 0 {
			panic("component " + reflect.TypeOf(comp).String() + " does not match column " + a.types[idx].String())
		}
	}
	return uint32(index)
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of compType stored at index, or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.columns[idx].Get(int(index))
}

func (a *Archetype) delete(index uint32) {
	for _, column := range a.columns {
		column.Delete(int(index))
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter yields the ids of all live entities in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
