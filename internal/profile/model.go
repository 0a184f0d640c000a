package profile

import (
	"net/url"
	"time"
)

const avatarService = "https://ui-avatars.com/api/"

type Profile struct {
	Name      string
	Email     string
	Phone     string
	Role      string
	Avatar    string
	CreatedAt time.Time
}

// AvatarURL returns the stored avatar or an initials avatar built from the name.
func (p Profile) AvatarURL() string {
	if p.Avatar != "" {
		return p.Avatar
	}
	return InitialsAvatar(p.Name)
}

// InitialsAvatar is also the fallback when the stored avatar fails to load.
func InitialsAvatar(name string) string {
	if name == "" {
		name = "U"
	}
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "0f172a")
	q.Set("color", "fff")
	return avatarService + "?" + q.Encode()
}
