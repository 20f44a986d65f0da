package ir

import "fmt"

// OperationCode identifies what an Operation computes.
type OperationCode int

const (
	OpAssign OperationCode = iota
	OpSelect

	OpFAdd
	OpFMul
	OpFFma
	OpFNegate
	OpFAbsolute
	OpFClamp
	OpFMin
	OpFMax

	OpIAdd
	OpIMul
	OpINegate
	OpIAbsolute
	OpIMin
	OpIMax
	OpIBitwiseAnd
	OpIBitwiseOr
	OpIBitwiseXor
	OpIBitwiseNot
	OpILogicalShiftLeft
	OpILogicalShiftRight
	OpIArithmeticShiftRight
	OpIBitfieldInsert
	OpIBitfieldExtract

	OpUAdd
	OpUMul
	OpUMin
	OpUMax

	OpLogicalAssign
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor
	OpLogicalNegate

	OpLogicalFLessThan
	OpLogicalFEqual
	OpLogicalILessThan
	OpLogicalIEqual

	OpTexture
	OpTextureLod
	OpTexelFetch

	OpBranch
	OpExit
	OpDiscard

	opCount
)

var opNames = [opCount]string{
	OpAssign: "Assign",
	OpSelect: "Select",

	OpFAdd:      "FAdd",
	OpFMul:      "FMul",
	OpFFma:      "FFma",
	OpFNegate:   "FNegate",
	OpFAbsolute: "FAbsolute",
	OpFClamp:    "FClamp",
	OpFMin:      "FMin",
	OpFMax:      "FMax",

	OpIAdd:                  "IAdd",
	OpIMul:                  "IMul",
	OpINegate:               "INegate",
	OpIAbsolute:             "IAbsolute",
	OpIMin:                  "IMin",
	OpIMax:                  "IMax",
	OpIBitwiseAnd:           "IBitwiseAnd",
	OpIBitwiseOr:            "IBitwiseOr",
	OpIBitwiseXor:           "IBitwiseXor",
	OpIBitwiseNot:           "IBitwiseNot",
	OpILogicalShiftLeft:     "ILogicalShiftLeft",
	OpILogicalShiftRight:    "ILogicalShiftRight",
	OpIArithmeticShiftRight: "IArithmeticShiftRight",
	OpIBitfieldInsert:       "IBitfieldInsert",
	OpIBitfieldExtract:      "IBitfieldExtract",

	OpUAdd: "UAdd",
	OpUMul: "UMul",
	OpUMin: "UMin",
	OpUMax: "UMax",

	OpLogicalAssign: "LogicalAssign",
	OpLogicalAnd:    "LogicalAnd",
	OpLogicalOr:     "LogicalOr",
	OpLogicalXor:    "LogicalXor",
	OpLogicalNegate: "LogicalNegate",

	OpLogicalFLessThan: "LogicalFLessThan",
	OpLogicalFEqual:    "LogicalFEqual",
	OpLogicalILessThan: "LogicalILessThan",
	OpLogicalIEqual:    "LogicalIEqual",

	OpTexture:    "Texture",
	OpTextureLod: "TextureLod",
	OpTexelFetch: "TexelFetch",

	OpBranch:  "Branch",
	OpExit:    "Exit",
	OpDiscard: "Discard",
}

var opByName = func() map[string]OperationCode {
	m := make(map[string]OperationCode, opCount)
	for code, name := range opNames {
		m[name] = OperationCode(code)
	}
	return m
}()

func (c OperationCode) String() string {
	if c >= 0 && c < opCount {
		return opNames[c]
	}
	return fmt.Sprintf("OperationCode(%d)", int(c))
}

// ParseOperationCode looks up an opcode by its String name.
func ParseOperationCode(name string) (OperationCode, bool) {
	code, ok := opByName[name]
	return code, ok
}
