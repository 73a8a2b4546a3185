package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/launchcore/internal/apps"
)

func entry(label, pkg string) apps.Entry {
	return apps.Entry{Label: label, Package: pkg, Profile: "u0"}
}

func corpusWithSentinel(entries ...apps.Entry) []apps.Entry {
	return append(entries, apps.Sentinel("u0"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Café", "cafe"},
		{"Sub-Zero", "subzero"},
		{"a_b+c,d.e f", "abcdef"},
		{"ÅNGSTRÖM", "angstrom"},
		{"", ""},
		{" -_ ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestFilter_DiacriticTolerant(t *testing.T) {
	corpus := corpusWithSentinel(entry("Café", "pkgA"), entry("Settings", "pkgB"))

	got := Filter(corpus, "cafe")
	assert.Equal(t, []apps.Entry{entry("Café", "pkgA")}, got)
	assert.True(t, ShouldAutoLaunch("cafe", got))

	got = Filter(corpus, "CAFÉ")
	assert.Len(t, got, 1)
}

func TestFilter_DiacriticVariantsOfLabel(t *testing.T) {
	corpus := []apps.Entry{entry("Resume", "a"), entry("Naive Notes", "b")}

	for _, q := range []string{"Résumé", "résume", "naïve", "Naïve Notes"} {
		assert.NotEmpty(t, Filter(corpus, q), q)
	}
}

func TestFilter_SeparatorsIgnored(t *testing.T) {
	corpus := []apps.Entry{entry("Sub-Zero", "a"), entry("Mail", "b")}
	assert.Equal(t, []apps.Entry{entry("Sub-Zero", "a")}, Filter(corpus, "subzero"))
	assert.Equal(t, []apps.Entry{entry("Sub-Zero", "a")}, Filter(corpus, "sub zero"))
}

func TestFilter_BlankQueryReturnsCorpus(t *testing.T) {
	corpus := corpusWithSentinel(entry("A", "a"), entry("B", "b"))

	assert.Equal(t, corpus, Filter(corpus, ""))
	assert.Equal(t, corpus, Filter(corpus, "   "))
	assert.Equal(t, 2, apps.CountReal(Filter(corpus, "")))
}

func TestFilter_StableOrderAndNoSentinel(t *testing.T) {
	corpus := corpusWithSentinel(entry("Zeta Map", "z"), entry("Alpha Map", "a"), entry("Mail", "m"))

	got := Filter(corpus, "map")
	assert.Equal(t, []apps.Entry{entry("Zeta Map", "z"), entry("Alpha Map", "a")}, got)
	for _, e := range got {
		assert.False(t, e.IsSentinel())
	}
}

func TestFilter_SeparatorOnlyQuery(t *testing.T) {
	corpus := []apps.Entry{entry("Sub-Zero", "a"), entry("Mail", "b")}
	assert.Equal(t, []apps.Entry{entry("Sub-Zero", "a")}, Filter(corpus, "-"))
}

func TestShouldAutoLaunch(t *testing.T) {
	one := []apps.Entry{entry("Café", "a"), apps.Sentinel("u0")}
	two := []apps.Entry{entry("A", "a"), entry("B", "b")}

	tests := []struct {
		name    string
		query   string
		results []apps.Entry
		want    bool
	}{
		{"single result", "caf", one, true},
		{"bang", "!caf", one, false},
		{"leading space", " caf", one, false},
		{"trailing space is fine", "caf ", one, true},
		{"two results", "a", two, false},
		{"no results", "zzz", nil, false},
		{"blank", "", one, false},
		{"sentinel only", "x", []apps.Entry{apps.Sentinel("u0")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldAutoLaunch(tt.query, tt.results))
		})
	}
}

func TestSubmit(t *testing.T) {
	corpus := corpusWithSentinel(entry("Maps", "maps"), entry("Mail", "mail"))

	t.Run("bang", func(t *testing.T) {
		a := Submit("  !w go lang ", nil, corpus, "")
		assert.Equal(t, ActionBangSearch, a.Kind)
		assert.Equal(t, "https://duckduckgo.com/?q=!w%20go%20lang", a.URL)
	})

	t.Run("custom bang url", func(t *testing.T) {
		a := Submit("!g x", nil, corpus, "https://example.org/s?q=")
		assert.Equal(t, "https://example.org/s?q=!g%20x", a.URL)
	})

	t.Run("launch first", func(t *testing.T) {
		results := Filter(corpus, "ma")
		a := Submit("ma", results, corpus, "")
		assert.Equal(t, ActionLaunch, a.Kind)
		assert.Equal(t, "maps", a.Entry.Package)
	})

	t.Run("web search with suggestion", func(t *testing.T) {
		results := Filter(corpus, "mapz")
		a := Submit("mapz", results, corpus, "")
		assert.Equal(t, ActionWebSearch, a.Kind)
		assert.Equal(t, "mapz", a.Query)
		assert.Equal(t, "Maps", a.Suggestion)
	})

	t.Run("sentinel only results route to web search", func(t *testing.T) {
		a := Submit("q", []apps.Entry{apps.Sentinel("u0")}, corpus, "")
		assert.Equal(t, ActionWebSearch, a.Kind)
	})
}

func TestSuggest(t *testing.T) {
	corpus := corpusWithSentinel(entry("Calendar", "c"), entry("Calculator", "k"))
	assert.Equal(t, "Calculator", Suggest(corpus, "calculater"))
	assert.Equal(t, "", Suggest(corpus, ""))
	assert.Equal(t, "", Suggest([]apps.Entry{apps.Sentinel("u0")}, "x"))
}

func TestActionKind_String(t *testing.T) {
	assert.Equal(t, "launch", ActionLaunch.String())
	assert.Equal(t, "ActionKind(0)", ActionKind(0).String())
}
