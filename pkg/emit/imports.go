package emit

import (
	"sort"
	"strings"

	"github.com/toyz/cskit/pkg/decl"
)

// collectImports gathers every import request under t, deduplicated and sorted
func collectImports(t decl.Type) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(imports ...string) {
		for _, imp := range imports {
			imp = normalizeImport(imp)
			if imp == "" || seen[imp] {
				continue
			}
			seen[imp] = true
			out = append(out, imp)
		}
	}
	walkImports(t, add)
	sortImports(out)
	return out
}

func walkImports(t decl.Type, add func(...string)) {
	add(t.Imports...)
	addParameterImports(t.PrimaryParameters, add)
	addParameterImports(t.Parameters, add)
	for _, m := range t.Members {
		add(m.ImportRequests()...)
		switch n := m.(type) {
		case decl.Type:
			walkImports(n, add)
		case decl.Method:
			addCallableImports(n.Parameters, add)
		case decl.Constructor:
			addCallableImports(n.Parameters, add)
		case decl.Operator:
			addCallableImports(n.Parameters, add)
		case decl.Indexer:
			addParameterImports(n.Parameters, add)
		}
	}
}

// addCallableImports adds parameter imports plus the namespace of the throw
// helpers when guards will be rendered
func addCallableImports(params []decl.Parameter, add func(...string)) {
	addParameterImports(params, add)
	if decl.HasGuards(params) {
		add(decl.GuardImport)
	}
}

func addParameterImports(params []decl.Parameter, add func(...string)) {
	for _, p := range params {
		add(p.Imports...)
	}
}

// normalizeImport accepts "System.Text", "using System.Text;" or
// "static System.Math" and returns the bare import text
func normalizeImport(imp string) string {
	imp = strings.TrimSpace(imp)
	imp = strings.TrimSuffix(imp, ";")
	if rest, ok := strings.CutPrefix(imp, "using "); ok {
		imp = rest
	}
	return strings.Join(strings.Fields(imp), " ")
}

func importGroup(imp string) int {
	switch {
	case strings.Contains(imp, "="):
		return 3
	case strings.HasPrefix(imp, "static "):
		return 2
	case imp == "System" || strings.HasPrefix(imp, "System."):
		return 0
	default:
		return 1
	}
}

// sortImports orders System imports first, then other namespaces, then static
// imports, then aliases; alphabetical within each group
func sortImports(imports []string) {
	sort.SliceStable(imports, func(i, j int) bool {
		gi, gj := importGroup(imports[i]), importGroup(imports[j])
		if gi != gj {
			return gi < gj
		}
		return imports[i] < imports[j]
	})
}
