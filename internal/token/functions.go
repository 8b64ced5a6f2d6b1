package token

import "basv2/internal/types"

// FuncInfo describes a builtin function signature.
type FuncInfo struct {
	Result  types.ExprType
	MinArgs int
	MaxArgs int
}

var builtins = map[string]FuncInfo{
	"CHR$":   {types.String, 1, 1},
	"MID$":   {types.String, 2, 3},
	"LEFT$":  {types.String, 2, 2},
	"RIGHT$": {types.String, 2, 2},
	"STR$":   {types.String, 1, 1},
	"VAL":    {types.Numeric, 1, 1},
	"ASC":    {types.Numeric, 1, 1},
	"LEN":    {types.Numeric, 1, 1},
	"RND":    {types.Numeric, 0, 1},
	"INT":    {types.Numeric, 1, 1},
	"ABS":    {types.Numeric, 1, 1},
	"LOG":    {types.Numeric, 1, 1},
	"SIN":    {types.Numeric, 1, 1},
	"COS":    {types.Numeric, 1, 1},
	"TAN":    {types.Numeric, 1, 1},
	"SQR":    {types.Numeric, 1, 1},
	"ATN":    {types.Numeric, 1, 1},
	"EXP":    {types.Numeric, 1, 1},
	"SGN":    {types.Numeric, 1, 1},
	"PEEK":   {types.Numeric, 1, 1},
	"FRE":    {types.Numeric, 1, 1},
	"POS":    {types.Numeric, 1, 1},
	"USR":    {types.Numeric, 1, 1},
	"PI":     {types.Numeric, 0, 0},
}

// LookupFunc returns the signature of a builtin by upper-cased name.
func LookupFunc(upper string) (FuncInfo, bool) {
	fi, ok := builtins[upper]
	return fi, ok
}
