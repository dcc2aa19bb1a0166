package codec

// Kind tags a classified value with its packing rule.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindS8
	KindU8
	KindS16
	KindU16
	KindS32
	KindU32
	KindS64
	KindU64
	KindF32
	KindF64
	KindPointer
	KindEnum
	KindString
	KindNull
	KindHandle
	KindExpand
	KindStruct
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindS8:      "s8",
	KindU8:      "u8",
	KindS16:     "s16",
	KindU16:     "u16",
	KindS32:     "s32",
	KindU32:     "u32",
	KindS64:     "s64",
	KindU64:     "u64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindPointer: "pointer",
	KindEnum:    "enum",
	KindString:  "string",
	KindNull:    "null",
	KindHandle:  "handle",
	KindExpand:  "expand",
	KindStruct:  "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// width returns the byte width written for primitive kinds, 0 otherwise.
func (k Kind) width() int {
	switch k {
	case KindBool, KindS8, KindU8:
		return 1
	case KindS16, KindU16:
		return 2
	case KindS32, KindU32, KindF32:
		return 4
	case KindS64, KindU64, KindF64, KindPointer:
		return 8
	}
	return 0
}
