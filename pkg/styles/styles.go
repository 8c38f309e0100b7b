// Package styles maps handwriting style identifiers to CSS font families.
//
// The table is fixed at compile time. Each family lists a Latin
// handwriting face followed by CJK fallbacks so that translated text in
// Japanese, Chinese or Korean still renders in a handwritten register.
package styles

// None is the identifier of the unstyled default.
const None = "none"

// Descriptor describes one handwriting style.
type Descriptor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FontFamily string `json:"fontFamily"`
}

var table = []Descriptor{
	{None, "Regular Text", "inherit"},
	{"caveat", "Casual Handwriting", `"Caveat", "Noto Sans JP", "Noto Sans SC", "Noto Sans KR", "Noto Sans", cursive`},
	{"dancing-script", "Elegant Script", `"Dancing Script", "Ma Shan Zheng", "Yuji Mai", cursive`},
	{"indie-flower", "Fun Handwriting", `"Indie Flower", "Kaisei Decol", "ZCOOL KuaiLe", cursive`},
	{"homemade-apple", "Natural Handwriting", `"Homemade Apple", "Zen Maru Gothic", "Liu Jian Mao Cao", cursive`},
	{"patrick-hand", "Neat Handwriting", `"Patrick Hand", "Zen Kurenaido", "Zhi Mang Xing", cursive`},
	{"shadows-into-light", "Quick Notes", `"Shadows Into Light", "Yomogi", "Zhi Mang Xing", cursive`},
	{"covered-by-your-grace", "Casual Notes", `"Covered By Your Grace", "Stick", "Long Cang", cursive`},
	{"rock-salt", "Chalk Style", `"Rock Salt", "Hachi Maru Pop", "Deng Xian", cursive`},
}

var byID = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(table))
	for _, d := range table {
		m[d.ID] = d
	}
	return m
}()

// Resolve returns the descriptor for id. Unknown or empty ids resolve to
// the [None] style, so Resolve never fails.
func Resolve(id string) Descriptor {
	if d, ok := byID[id]; ok {
		return d
	}
	return byID[None]
}

// Known reports whether id names a style in the table.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// All returns every style in display order. The slice is a copy.
func All() []Descriptor {
	return append([]Descriptor(nil), table...)
}

// IDs returns the style identifiers in display order.
func IDs() []string {
	ids := make([]string, len(table))
	for i, d := range table {
		ids[i] = d.ID
	}
	return ids
}
