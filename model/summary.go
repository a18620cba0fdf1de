package model

// Summary is a serializable view of LangData used by model dumps.
type Summary struct {
	Start   string          `yaml:"start"`
	Keys    []KeySummary    `yaml:"keys"`
	Structs []StructSummary `yaml:"structs,omitempty"`
	Enums   []EnumSummary   `yaml:"enums,omitempty"`
	Lists   []ListSummary   `yaml:"lists,omitempty"`
}

type KeySummary struct {
	Key  string `yaml:"key"`
	Kind string `yaml:"kind"`
	Type string `yaml:"type"`
	Many bool   `yaml:"many,omitempty"`
}

type StructSummary struct {
	Name    string          `yaml:"name"`
	Count   int             `yaml:"count"`
	Owned   bool            `yaml:"owned,omitempty"`
	Elided  bool            `yaml:"elided,omitempty"`
	Members []MemberSummary `yaml:"members,omitempty"`
}

type MemberSummary struct {
	Name     string `yaml:"name"`
	Key      string `yaml:"key,omitempty"`
	Kind     string `yaml:"kind"`
	Optional bool   `yaml:"optional,omitempty"`
	Negated  bool   `yaml:"negated,omitempty"`
	Boxed    bool   `yaml:"boxed,omitempty"`
}

type EnumSummary struct {
	Name   string   `yaml:"name"`
	Items  []string `yaml:"items"`
	Boxed  []string `yaml:"boxed,omitempty"`
	Simple bool     `yaml:"simple,omitempty"`
	Owned  bool     `yaml:"owned,omitempty"`
}

type ListSummary struct {
	Name      string `yaml:"name"`
	Item      string `yaml:"item"`
	Separator string `yaml:"separator,omitempty"`
	Owned     bool   `yaml:"owned,omitempty"`
}

// Summarize returns a snapshot of d in lexicographic order.
func (d *LangData) Summarize() *Summary {
	result := &Summary{Start: d.Start}

	for _, key := range d.EntryKeys() {
		entry := d.Entry(key)
		kind := "shape"
		if entry.Kind == ListEntry {
			kind = "list"
		}
		rt := d.RuleTypes[key]
		result.Keys = append(result.Keys, KeySummary{key, kind, rt.Name, rt.Kind == ManyType})
	}

	for _, name := range d.StructNames() {
		s := d.Struct(name)
		ss := StructSummary{Name: name, Count: s.Count, Owned: d.Owned[name], Elided: d.Elided[name]}
		for _, mn := range s.Members {
			m := s.MemberMap[mn]
			ss.Members = append(ss.Members, MemberSummary{
				Name:     m.Name,
				Key:      m.Key,
				Kind:     m.Kind.String(),
				Optional: m.Optional,
				Negated:  m.Negated,
				Boxed:    m.Boxed,
			})
		}
		result.Structs = append(result.Structs, ss)
	}

	for _, name := range d.EnumNames() {
		en := d.Enum(name)
		es := EnumSummary{Name: name, Items: en.Items, Simple: en.Simple, Owned: d.Owned[name]}
		for _, item := range en.Items {
			if en.Boxed[item] {
				es.Boxed = append(es.Boxed, item)
			}
		}
		result.Enums = append(result.Enums, es)
	}

	for _, name := range d.ListNames() {
		l := d.List(name)
		ls := ListSummary{Name: name, Item: l.Item, Owned: d.Owned[name]}
		if l.Separator != nil {
			ls.Separator = l.Separator.Key
		}
		result.Lists = append(result.Lists, ls)
	}

	return result
}
