package vm

// ParseParamKinds walks a method descriptor's parameter section,
// "(...)R", and returns the Kind each parameter occupies on the
// evaluation stack (reference and array types both read as KindObjRef).
func ParseParamKinds(desc string) []Kind {
	if len(desc) == 0 || desc[0] != '(' {
		panic(FatalErrorf("malformed method descriptor: %s", desc))
	}
	var kinds []Kind
	i := 1
	for i < len(desc) && desc[i] != ')' {
		k, n := parseFieldType(desc[i:])
		kinds = append(kinds, k)
		i += n
	}
	return kinds
}

// ReturnKind reports the Kind a method descriptor's return type occupies,
// and whether it returns anything at all (false for "V").
func ReturnKind(desc string) (Kind, bool) {
	i := indexByte(desc, ')')
	if i < 0 || i+1 >= len(desc) {
		panic(FatalErrorf("malformed method descriptor: %s", desc))
	}
	ret := desc[i+1:]
	if ret == "V" {
		return 0, false
	}
	k, _ := parseFieldType(ret)
	return k, true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// parseFieldType parses one field descriptor starting at s[0], returning
// its Kind and how many bytes it consumed (array dimensions and class
// names are skipped over, not modeled structurally beyond "it's a ref").
func parseFieldType(s string) (Kind, int) {
	switch s[0] {
	case 'Z':
		return KindBool, 1
	case 'B':
		return KindByte, 1
	case 'S':
		return KindShort, 1
	case 'C':
		return KindChar, 1
	case 'I':
		return KindInt, 1
	case 'J':
		return KindLong, 1
	case 'F':
		return KindFloat, 1
	case 'D':
		return KindDouble, 1
	case 'L':
		end := indexByte(s, ';')
		return KindObjRef, end + 1
	case '[':
		_, n := parseFieldType(s[1:])
		return KindObjRef, n + 1
	default:
		panic(FatalErrorf("malformed field descriptor: %s", s))
	}
}
