package emit

import "github.com/toyz/cskit/pkg/decl"

// Automatic region names, in emission order
const (
	RegionFields       = "Fields"
	RegionConstructors = "Constructors"
	RegionProperties   = "Properties"
	RegionMethods      = "Methods"
)

var categories = []string{RegionFields, RegionConstructors, RegionProperties, RegionMethods}

// section is a run of members emitted together; a named section is wrapped in
// #region / #endregion
type section struct {
	name    string
	members []decl.Member
}

// category returns the automatic region for m, or "" for nested types and enum
// values which are never categorized
func category(m decl.Member) string {
	switch m.Kind() {
	case decl.KindField, decl.KindEvent:
		return RegionFields
	case decl.KindConstructor:
		return RegionConstructors
	case decl.KindProperty, decl.KindIndexer:
		return RegionProperties
	case decl.KindMethod, decl.KindOperator:
		return RegionMethods
	default:
		return ""
	}
}

// orderOperators moves symbolic operators ahead of conversion operators. Other
// members keep their slots.
func orderOperators(members []decl.Member) []decl.Member {
	var slots []int
	var symbolic, conversions []decl.Member
	for i, m := range members {
		op, ok := m.(decl.Operator)
		if !ok {
			continue
		}
		slots = append(slots, i)
		if op.IsConversion() {
			conversions = append(conversions, m)
		} else {
			symbolic = append(symbolic, m)
		}
	}
	if len(slots) == 0 {
		return members
	}
	out := append([]decl.Member(nil), members...)
	for i, m := range append(symbolic, conversions...) {
		out[slots[i]] = m
	}
	return out
}

// organize splits t's members into sections. With auto set, untagged members
// go to the category regions, tagged members follow grouped per tag in
// first-occurrence order, and nested types and enum values trail unregioned.
// A tag naming a category joins that category. Without auto, members keep
// source order and each tag group sits where its first member appears.
func organize(t decl.Type, auto bool) []section {
	members := orderOperators(t.Members)
	if t.TypeKind == decl.EnumKind {
		return []section{{members: members}}
	}
	if auto {
		return organizeAuto(members)
	}
	return organizeTagged(members)
}

func organizeAuto(members []decl.Member) []section {
	byCategory := make(map[string][]decl.Member)
	var tags []string
	byTag := make(map[string][]decl.Member)
	var trailing []decl.Member

	for _, m := range members {
		tag := m.RegionTag()
		switch {
		case tag != "" && isCategory(tag):
			byCategory[tag] = append(byCategory[tag], m)
		case tag != "":
			if _, seen := byTag[tag]; !seen {
				tags = append(tags, tag)
			}
			byTag[tag] = append(byTag[tag], m)
		case category(m) == "":
			trailing = append(trailing, m)
		default:
			byCategory[category(m)] = append(byCategory[category(m)], m)
		}
	}

	var out []section
	for _, name := range categories {
		if len(byCategory[name]) > 0 {
			out = append(out, section{name: name, members: byCategory[name]})
		}
	}
	for _, tag := range tags {
		out = append(out, section{name: tag, members: byTag[tag]})
	}
	if len(trailing) > 0 {
		out = append(out, section{members: trailing})
	}
	return out
}

func organizeTagged(members []decl.Member) []section {
	var out []section
	index := make(map[string]int)
	for _, m := range members {
		tag := m.RegionTag()
		if tag == "" {
			if n := len(out); n > 0 && out[n-1].name == "" {
				out[n-1].members = append(out[n-1].members, m)
			} else {
				out = append(out, section{members: []decl.Member{m}})
			}
			continue
		}
		if i, ok := index[tag]; ok {
			out[i].members = append(out[i].members, m)
			continue
		}
		index[tag] = len(out)
		out = append(out, section{name: tag, members: []decl.Member{m}})
	}
	return out
}

func isCategory(name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}
