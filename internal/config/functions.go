package config

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/iconlookup/internal/roots"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// MakeEnvFunc creates an HCL function returning an environment variable,
// or "" when unset.
// Usage: env("HOME")
func MakeEnvFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the value of an environment variable",
		Params: []function.Parameter{
			{
				Name: "name",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(os.Getenv(args[0].AsString())), nil
		},
	})
}

// MakeHomeFunc creates an HCL function returning the user's home directory.
// Usage: "${home()}/.icons"
func MakeHomeFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the home directory of the current user",
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			return cty.StringVal(xdg.Home), nil
		},
	})
}

// MakeDataDirsFunc creates an HCL function returning every
// $XDG_DATA_DIRS entry joined with "icons".
// Usage: search_roots = concat(["${home()}/.icons"], xdg_data_dirs())
func MakeDataDirsFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the icon directories below $XDG_DATA_DIRS",
		Type:        function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			dirs := roots.DataDirs()
			if len(dirs) == 0 {
				return cty.ListValEmpty(cty.String), nil
			}
			vals := make([]cty.Value, len(dirs))
			for i, d := range dirs {
				vals[i] = cty.StringVal(d)
			}
			return cty.ListVal(vals), nil
		},
	})
}

// MakeConcatFunc creates an HCL function joining string lists.
// Usage: concat(["/opt/icons"], xdg_data_dirs())
func MakeConcatFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Joins lists of strings",
		VarParam: &function.Parameter{
			Name: "lists",
			Type: cty.List(cty.String),
		},
		Type: function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			var vals []cty.Value
			for _, list := range args {
				vals = append(vals, list.AsValueSlice()...)
			}
			if len(vals) == 0 {
				return cty.ListValEmpty(cty.String), nil
			}
			return cty.ListVal(vals), nil
		},
	})
}

// BuildEvalContext creates the evaluation context for configuration files.
func BuildEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env":           MakeEnvFunc(),
			"home":          MakeHomeFunc(),
			"xdg_data_dirs": MakeDataDirsFunc(),
			"concat":        MakeConcatFunc(),
		},
	}
}
