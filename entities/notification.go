package entities

type Notification struct {
	Record
	Title      string `json:"title"`
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	TargetRole string `json:"target_role,omitempty"`
	Link       string `json:"link,omitempty"`
	User       *User  `json:"user,omitempty"`
}

type UploadFile struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Mime string  `json:"mime"`
	Size float64 `json:"size"`
	URL  string  `json:"url"`
	Ext  string  `json:"ext,omitempty"`
}
