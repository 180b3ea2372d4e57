package model_test

import (
	"testing"

	"codearena/internal/domain/model"
)

func TestParseLanguageAliases(t *testing.T) {
	cases := []struct {
		in   string
		want model.SourceLanguage
		ok   bool
	}{
		{"java", model.LangJava, true},
		{"Java", model.LangJava, true},
		{"cpp", model.LangCpp, true},
		{"C++", model.LangCpp, true},
		{"python", model.LangPython, true},
		{"py", model.LangPython, true},
		{"javascript", model.LangJavaScript, true},
		{"JS", model.LangJavaScript, true},
		{"node", model.LangJavaScript, true},
		{"  python  ", model.LangPython, true},
		{"rust", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := model.ParseLanguage(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseLanguage(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestSlugRoundTrip(t *testing.T) {
	for _, lang := range model.Languages() {
		got, ok := model.ParseLanguage(lang.Slug())
		if !ok || got != lang {
			t.Errorf("ParseLanguage(%q) = %q, %v; want %q", lang.Slug(), got, ok, lang)
		}
	}
}

func TestDefaultTemplates(t *testing.T) {
	for _, lang := range model.Languages() {
		tmpl := model.DefaultTemplate(lang)
		if tmpl == "" {
			t.Errorf("%s: missing default template", lang)
		}
		if !model.IsDefaultTemplate(lang, tmpl) {
			t.Errorf("%s: template must match itself", lang)
		}
		// Surrounding whitespace does not make a buffer user-edited.
		if !model.IsDefaultTemplate(lang, "\n"+tmpl+"\n\n") {
			t.Errorf("%s: whitespace-padded template must still count as default", lang)
		}
		if model.IsDefaultTemplate(lang, tmpl+"\nprint('edited')") {
			t.Errorf("%s: edited buffer must not count as default", lang)
		}
	}
}
