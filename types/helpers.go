package types

// Named unwraps list and non-null markers down to the named type.
func Named(t Type) NamedType {
	for {
		switch w := t.(type) {
		case *List:
			t = w.OfType
		case *NonNull:
			t = w.OfType
		case NamedType:
			return w
		default:
			return nil
		}
	}
}

// Nullable strips one non-null marker, if present.
func Nullable(t Type) Type {
	if nn, ok := t.(*NonNull); ok {
		return nn.OfType
	}
	return t
}

func IsInputType(t Type) bool {
	_, ok := Named(t).(Input)
	return ok
}

func IsOutputType(t Type) bool {
	_, ok := Named(t).(Output)
	return ok
}

func IsLeafType(t Type) bool {
	_, ok := t.(Leaf)
	return ok
}

func IsCompositeType(t Type) bool {
	_, ok := t.(Composite)
	return ok
}

func IsAbstractType(t Type) bool {
	_, ok := t.(Abstract)
	return ok
}

// IsSubType reports whether sub may be used where super is expected: equal
// types, covariant non-null and list wrappers, and possible types of abstract
// types.
func IsSubType(s *Schema, super, sub Type) bool {
	if super == sub {
		return true
	}
	if superNN, ok := super.(*NonNull); ok {
		subNN, ok := sub.(*NonNull)
		if !ok {
			return false
		}
		return IsSubType(s, superNN.OfType, subNN.OfType)
	}
	if subNN, ok := sub.(*NonNull); ok {
		// A non-null value satisfies a nullable position.
		return IsSubType(s, super, subNN.OfType)
	}
	if superList, ok := super.(*List); ok {
		subList, ok := sub.(*List)
		if !ok {
			return false
		}
		return IsSubType(s, superList.OfType, subList.OfType)
	}
	if _, ok := sub.(*List); ok {
		return false
	}
	if ab, ok := super.(Abstract); ok {
		if obj, ok := sub.(*Object); ok {
			return s.IsPossibleType(ab, obj)
		}
		if sub, ok := sub.(*Interface); ok {
			for _, i := range sub.Interfaces() {
				if Abstract(i) == ab {
					return true
				}
			}
		}
	}
	return false
}

// Overlap reports whether two composite types can both apply to a single
// runtime value.
func Overlap(s *Schema, a, b Composite) bool {
	if a == b {
		return true
	}
	if aAb, ok := a.(Abstract); ok {
		if bAb, ok := b.(Abstract); ok {
			for _, t := range s.PossibleTypes(aAb) {
				if s.IsPossibleType(bAb, t) {
					return true
				}
			}
			return false
		}
		return s.IsPossibleType(aAb, b.(*Object))
	}
	if bAb, ok := b.(Abstract); ok {
		return s.IsPossibleType(bAb, a.(*Object))
	}
	return false
}
