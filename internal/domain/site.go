package domain

// BlogID identifies a site of a WordPress multisite network.
type BlogID int

// MainBlogID is the network's main site; single-site installs only have this one.
const MainBlogID BlogID = 1

// Profile is a translation connector configuration profile.
type Profile struct {
	ID             int    `json:"id"`
	Name           string `json:"profile_name"`
	IsActive       bool   `json:"is_active"`
	OriginalBlogID BlogID `json:"original_blog_id"` // Source-language site of the profile
}
