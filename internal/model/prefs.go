package model

// GuiSettings carries window geometry for a GUI front end. The model stores
// and returns it verbatim without interpretation.
type GuiSettings struct {
	WindowWidth  float64 `json:"window_width"`
	WindowHeight float64 `json:"window_height"`
	WindowX      int     `json:"window_x"`
	WindowY      int     `json:"window_y"`
}

// UserPrefs holds user-level state that survives restarts: GUI settings and
// the file paths of the two data files.
type UserPrefs struct {
	Gui                 GuiSettings `json:"gui_settings"`
	AddressBookFilePath string      `json:"address_book_file_path"`
	WeddingBookFilePath string      `json:"wedding_book_file_path"`
}

// DefaultUserPrefs returns the prefs used when no saved prefs exist.
func DefaultUserPrefs() UserPrefs {
	return UserPrefs{
		Gui:                 GuiSettings{WindowWidth: 740, WindowHeight: 600},
		AddressBookFilePath: "data/addressbook.json",
		WeddingBookFilePath: "data/weddingbook.json",
	}
}
