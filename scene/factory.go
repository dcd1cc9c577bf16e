// SPDX-License-Identifier: GPL-2.0-or-later

package scene

var factories = map[Kind]func(name string) Object{
	KindNode:   func(name string) Object { return NewNode(name) },
	KindCamera: func(name string) Object { return NewCamera(name) },
	KindModel:  func(name string) Object { return NewModel(name) },
	KindLight:  func(name string) Object { return NewLight(name, Directional) },
}

// Create builds a new object of kind k. It returns nil for an unknown kind.
func Create(k Kind, name string) Object {
	f, ok := factories[k]
	if !ok {
		return nil
	}
	return f(name)
}

// CreateByTag is Create with the kind given by its name.
func CreateByTag(tag, name string) Object {
	k, ok := ParseKind(tag)
	if !ok {
		return nil
	}
	return Create(k, name)
}
