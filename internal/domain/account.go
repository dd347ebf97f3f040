package domain

import "time"

// ServerInfo is the getServerInfo payload. TokenExpiresMinutes is how long
// the current token remains valid, reported with a fractional part the
// session truncates to whole minutes.
type ServerInfo struct {
	UnixTime            time.Time
	TokenExpiresMinutes float64
}

// AccountInfo is the getAccountInfo payload.
type AccountInfo struct {
	UserID          string
	Alias           string
	Pro             bool
	DateFormat      int
	Timezone        int
	HideMonths      int
	HotlistPriority Priority
	HotlistDueDate  int
	LastAddEdit     time.Time
	LastDelete      time.Time
}
