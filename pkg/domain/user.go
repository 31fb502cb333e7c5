package domain

// Avatar is the hero identity a user picks once after registering.
type Avatar struct {
	Class string `json:"avatar_class"`
	Image string `json:"avatar_image"`
	Name  string `json:"name"`
}

// User represents a registered LifeQuest player.
//
// Gold also appears on Stats; both come from the server and are kept in
// sync by refetching, never by incrementing either locally.
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Avatar    *Avatar  `json:"avatar,omitempty"`
	Level     int      `json:"level"`
	XP        int      `json:"xp"`
	Gold      int      `json:"gold"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"max_hp"`
	Streak    int      `json:"streak"`
	Badges    []string `json:"badges,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// HasAvatar reports whether the user has completed avatar selection.
// Users without one are routed to the avatar screen before anything else.
func (u *User) HasAvatar() bool {
	return u != nil && u.Avatar != nil
}

// AvatarOptions is the fixed catalog offered during avatar selection.
// The server stores whatever it is sent; the catalog lives client-side.
var AvatarOptions = []Avatar{
	{Class: "warrior", Image: "https://images.unsplash.com/photo-1750092701416-174aaa737e55", Name: "Warrior"},
	{Class: "mage", Image: "https://images.unsplash.com/photo-1743951896798-2936f661f939", Name: "Mage"},
	{Class: "noble", Image: "https://images.unsplash.com/photo-1693921978742-c93c4a3e6172", Name: "Noble"},
}
