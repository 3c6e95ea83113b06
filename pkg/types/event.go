package types

// NavigationEvent describes one settled transition. It is produced once per
// successful navigation and handed to every settle listener.
type NavigationEvent struct {
	ID     string  `json:"id"`
	From   StateID `json:"from"`
	To     StateID `json:"to"`
	Title  string  `json:"title"`
	Params Params  `json:"params"`
	Replay bool    `json:"replay"`
	Href   string  `json:"href"`
}
