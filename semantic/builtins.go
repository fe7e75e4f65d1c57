package semantic

// Builtins returns a small, explicitly non-exhaustive catalog of
// FunctionSigs exercising every shape of the generic/ParamShape
// machinery: a fixed-arity control-flow function with a Variant
// generic (`if`), a repeat-group control-flow function (`ifs`), a
// repeat-only variadic function (`sum`), optional parameters (`empty`,
// `id`), a union-of-alternatives parameter (`length`), and Plain
// generics standing in for richer domain types the real product would
// flesh out (`name`, `email`, `id`). Completeness of Notion's actual
// function list is explicitly out of scope; this catalog exists to
// drive the analyzer and completion engine end to end.
//
// `equal`/`unequal` are included so they always resolve by name, but
// are deliberately excluded from the completion engine's candidate
// list (see ide/completion).
func Builtins() []FunctionSig {
	const t0 GenericId = 0

	return []FunctionSig{
		{
			Name:     "if",
			Generics: []GenericParam{{ID: t0, Kind: Variant}},
			Shape: ParamShape{Head: []ParamSig{
				{Name: "condition", Ty: Boolean},
				{Name: "then", Ty: GenericTy(t0)},
				{Name: "else", Ty: GenericTy(t0)},
			}},
			Return: GenericTy(t0),
		},
		{
			Name:     "ifs",
			Generics: []GenericParam{{ID: t0, Kind: Variant}},
			Shape: ParamShape{
				Repeat: []ParamSig{
					{Name: "condition1", Ty: Boolean},
					{Name: "value1", Ty: GenericTy(t0)},
				},
				Tail: []ParamSig{{Name: "default", Ty: GenericTy(t0)}},
			},
			Return: GenericTy(t0),
		},
		{
			Name:     "sum",
			Shape:    ParamShape{Repeat: []ParamSig{{Name: "values", Ty: Number}}},
			Return:   Number,
		},
		{
			Name:     "empty",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape:    ParamShape{Head: []ParamSig{{Name: "value", Ty: GenericTy(t0), Optional: true}}},
			Return:   Boolean,
		},
		{
			Name: "length",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape: ParamShape{Head: []ParamSig{
				{Name: "value", Ty: NormalizeUnion([]Ty{String, ListOf(GenericTy(t0))})},
			}},
			Return: Number,
		},
		{
			Name:     "format",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape:    ParamShape{Head: []ParamSig{{Name: "value", Ty: GenericTy(t0)}}},
			Return:   String,
		},
		{
			Name:     "equal",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape: ParamShape{Head: []ParamSig{
				{Name: "a", Ty: GenericTy(t0)},
				{Name: "b", Ty: GenericTy(t0)},
			}},
			Return: Boolean,
		},
		{
			Name:     "unequal",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape: ParamShape{Head: []ParamSig{
				{Name: "a", Ty: GenericTy(t0)},
				{Name: "b", Ty: GenericTy(t0)},
			}},
			Return: Boolean,
		},
		{
			// TODO: model Notion's richer person type instead of a bare
			// generic placeholder, once one is defined for this analyzer.
			Name:     "name",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape:    ParamShape{Head: []ParamSig{{Name: "person", Ty: GenericTy(t0)}}},
			Return:   String,
		},
		{
			Name:     "email",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape:    ParamShape{Head: []ParamSig{{Name: "person", Ty: GenericTy(t0)}}},
			Return:   String,
		},
		{
			// TODO: model a page-reference type instead of a bare generic
			// placeholder.
			Name:     "id",
			Generics: []GenericParam{{ID: t0, Kind: Plain}},
			Shape:    ParamShape{Head: []ParamSig{{Name: "page", Ty: GenericTy(t0), Optional: true}}},
			Return:   String,
		},
	}
}

// ReservedFunctionNames lists catalog functions that always resolve by
// name but are excluded from the completion engine's candidate list.
func ReservedFunctionNames() map[string]bool {
	return map[string]bool{"equal": true, "unequal": true}
}
