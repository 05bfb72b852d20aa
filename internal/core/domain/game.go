package domain

// SteamGame is an installed Steam application found in a library folder
type SteamGame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// AppState holds the fields of an app manifest used to judge whether a game
// is ready to be modded
type AppState struct {
	AppID       string
	Name        string
	InstallDir  string
	StateFlags  int
	BuildID     string
	SizeOnDisk  int64
	LastUpdated int64
}

// StateFullyInstalled is the StateFlags value Steam writes once an app is
// fully installed with no pending update
const StateFullyInstalled = 4

// FullyInstalled reports whether Steam considers the app ready to launch
func (s AppState) FullyInstalled() bool {
	return s.StateFlags == StateFullyInstalled
}
