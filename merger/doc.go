// Package merger flattens the parameters of an operation into one schema
// definition that the builder can compile.
//
// Parameters are merged first, in declaration order, followed by the
// properties of the request body. A body given as a reference is looked up in
// the definitions; its own required list decides which body properties are
// required. Every body property is tagged with the body location.
//
// # Merge Strategies
//
// A Strategy decides the key each parameter is stored under:
//
//   - StrategyCombineName ("combine-name"): keys are "<location>_<name>", so
//     "limit" in the query and in the path become "query_limit" and
//     "path_limit".
//   - StrategyReplaceLastWin ("replace-last-win"): keys are bare names and a
//     later parameter replaces an earlier one with the same name, including
//     its required flag.
//
// # Example
//
//	m, err := merger.New(merger.WithStrategyName("replace-last-win"))
//	def, err := m.Merge(op, definitions)
package merger
