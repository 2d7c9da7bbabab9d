package traversal

// Operator tokens. These are the server's step names and are transmitted
// verbatim; they are case-sensitive and must not be renamed.
const (
	OpV           = "V"
	OpE           = "E"
	OpHasLabel    = "hasLabel"
	OpAddV        = "addV"
	OpProperty    = "property"
	OpHas         = "has"
	OpHasNot      = "hasNot"
	OpAs          = "as"
	OpAddE        = "addE"
	OpOut         = "out"
	OpOutE        = "outE"
	OpOutV        = "outV"
	OpIn          = "in"
	OpInE         = "inE"
	OpInV         = "inV"
	OpBoth        = "both"
	OpBothE       = "bothE"
	OpLabel       = "label"
	OpID          = "id"
	OpFrom        = "from"
	OpTo          = "to"
	OpProperties  = "properties"
	OpPropertyMap = "propertyMap"
	OpValues      = "values"
	OpCount       = "count"
	OpGroupCount  = "groupCount"
	OpGroup       = "group"
	OpBy          = "by"
	OpSelect      = "select"
	OpFold        = "fold"
	OpPath        = "path"
	OpLimit       = "limit"
	OpDedup       = "dedup"
	OpOrder       = "order"
	OpDrop        = "drop"

	// Source instructions.
	OpWith = "with"
)

// mutating lists the operators that change the graph.
var mutating = map[string]bool{
	OpAddV:     true,
	OpAddE:     true,
	OpProperty: true,
	OpDrop:     true,
}

// IsReadOnly reports whether bc contains no graph-mutating operator.
func IsReadOnly(bc Bytecode) bool {
	for _, s := range bc.steps {
		if mutating[s.Operator] {
			return false
		}
	}
	return true
}
