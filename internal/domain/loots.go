package domain

import (
	"fmt"
	"time"
)

// LootsDateLayout is the layout used when rendering a tip's receive time
const LootsDateLayout = "2006-01-02 15:04"

// Loots is a single tip received through the Loots site.
// ID is the identifier assigned by Loots and is the only identity a tip has.
type Loots struct {
	ID          string     `json:"id"`
	Message     string     `json:"message"`
	LootsName   string     `json:"loots_name"`
	ReceivedAt  *time.Time `json:"received_at,omitempty"`
	Credited    bool       `json:"credited"`
	ViewerLogin string     `json:"viewer_login,omitempty"`
}

// IsLinked reports whether the tip is attributed to a known viewer
func (l Loots) IsLinked() bool {
	return l.ViewerLogin != ""
}

func (l Loots) String() string {
	date := ""
	if l.ReceivedAt != nil {
		date = l.ReceivedAt.Format(LootsDateLayout)
	}
	twitchName := l.LootsName
	if l.ViewerLogin != "" {
		twitchName = l.ViewerLogin
	}
	return fmt.Sprintf("Loots(%s) %s: L:%s / T:%s: %q", l.ID, date, l.LootsName, twitchName, l.Message)
}

// Viewer is a channel viewer holding a points balance
type Viewer struct {
	Login     string    `json:"login"`
	Points    int64     `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LootsLink maps a name used on Loots to a viewer login
type LootsLink struct {
	LootsName   string `json:"loots_name"`
	ViewerLogin string `json:"viewer_login"`
}
