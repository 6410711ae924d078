package constants

const (
	Version = `0.3.0`
	AppName = `notepy`

	// PersistenceVersion is the on-disk layout written by this build.
	PersistenceVersion = 3

	ConfigDir        = `.notepy`
	ConfigFile       = `config`
	ConfigFileType   = `yml`
	LegacyConfigFile = `.notepy.yml`

	DefaultBasePath   = `{home}/.notepy`
	DefaultGeometry   = `800x600`
	DefaultFontSize   = 20
	DefaultTheme      = `auto`
	DefaultEditor     = `nvim`
	NoteFile          = `README.md`
	LegacyNoteFile    = `note.md`
	TagsFile          = `tags.txt`
	StyleFile         = `style.css`
	LegacyNotesDir    = `notes`
	ScreenshotPrefix  = `screenshot_`
	ScreenshotSuffix  = `.png`
	UntitledNoteTitle = `Untitled`
	LogFile           = `notepy.log`

	DefaultCSS = `
table, th, td {
    border: 1px solid black;
    border-collapse: collapse;
}

blockquote {
    background-color: #e0e0e0;
}

pre code {
    background-color: #e0e0e0;
    font-family: monospace;
    display: block;
}

p code {
    font-family: monospace;
    color: #c03030;
}
`
)
