package model

import (
	"github.com/Paintersrp/notepy/internal/constants"
)

// Settings exposes the persisted application settings.
type Settings interface {
	Geometry() string
	FontSize() int
	Theme() string
}

// AppStore is satisfied by *persistence.Persistence.
type AppStore interface {
	Store
	Settings
}

type AppModel struct {
	name     string
	geometry string
	fontSize int
	theme    string
	Notes    *NoteCollection
}

func NewAppModel(store AppStore, opts ...CollectionOption) (*AppModel, error) {
	notes, err := NewNoteCollection(store, opts...)
	if err != nil {
		return nil, err
	}

	return &AppModel{
		name:     constants.AppName,
		geometry: store.Geometry(),
		fontSize: store.FontSize(),
		theme:    store.Theme(),
		Notes:    notes,
	}, nil
}

func (m *AppModel) Name() string { return m.name }

func (m *AppModel) Geometry() string { return m.geometry }

func (m *AppModel) FontSize() int { return m.fontSize }

func (m *AppModel) Theme() string { return m.theme }
