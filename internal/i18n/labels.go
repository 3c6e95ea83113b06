// Package i18n localizes the human-readable labels of the search states.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

//go:embed locales/*.toml
var locales embed.FS

// Message IDs.
const (
	MsgSearchTitle        = "SearchTitle"
	MsgStateSearch        = "StateSearch"
	MsgStateSearchResults = "StateSearchResults"
)

// Labels resolves messages for one locale, falling back to English.
type Labels struct {
	tag       language.Tag
	localizer *goi18n.Localizer
}

// New loads the embedded message files and returns Labels for locale. An
// empty locale means English; a malformed one is an error. Locales without
// a message file fall back to English.
func New(locale string) (*Labels, error) {
	tag := language.English
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tag = t
	}

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		data, err := locales.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}

	return &Labels{
		tag:       tag,
		localizer: goi18n.NewLocalizer(bundle, tag.String(), language.English.String()),
	}, nil
}

// Tag returns the requested language.
func (l *Labels) Tag() language.Tag {
	return l.tag
}

// Message returns the localized message for id, or id itself when no file
// defines it.
func (l *Labels) Message(id string) string {
	s, err := l.localizer.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil || s == "" {
		return id
	}
	return s
}

// SearchTitle returns the fallback title of a results view.
func (l *Labels) SearchTitle() string {
	return l.Message(MsgSearchTitle)
}

// StateName returns the display name of a state, or its ID when unnamed.
func (l *Labels) StateName(id types.StateID) string {
	switch id {
	case types.StateSearch:
		return l.Message(MsgStateSearch)
	case types.StateSearchResults:
		return l.Message(MsgStateSearchResults)
	}
	return string(id)
}
