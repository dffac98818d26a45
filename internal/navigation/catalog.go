// Package navigation holds the data and state behind the site navigation:
// the language, location and category catalogs, the session-aware account menu, the
// dropdown state machine and the listener lifecycle the widgets rely on.
package navigation

import "github.com/DragonEmporer001/fiverr-clone/internal/domain"

// Option is one selectable entry of a picker.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const (
	DefaultLanguage = "English"
	DefaultLocation = "Select Location"
)

var languages = []Option{
	{"en", "English"},
	{"hi", "हिंदी"},
	{"or", "ଓଡ଼ିଆ"},
	{"bn", "বাংলা"},
	{"ta", "தமிழ்"},
	{"te", "తెలుగు"},
	{"kn", "ಕನ್ನಡ"},
	{"ml", "മലയാളം"},
	{"pa", "ਪੰਜਾਬੀ"},
	{"gu", "ગુજરાતી"},
	{"mr", "मराठी"},
	{"ur", "اردو"},
}

var locations = []string{
	"Bhubneswar",
	"Cuttack",
	"Rourkela",
	"Berhampur",
	"New Delhi",
	"Mumbai",
	"Bangalore",
	"Chennai",
	"Kolkata",
	"Hyderabad",
	"Pune",
	"Ahmedabad",
}

// Languages returns the language picker entries.
func Languages() []Option {
	out := make([]Option, len(languages))
	copy(out, languages)
	return out
}

// Locations returns the location picker entries.
func Locations() []Option {
	out := make([]Option, len(locations))
	for i, l := range locations {
		out[i] = Option{Value: l, Label: l}
	}
	return out
}

var categories = []string{
	"Advocates",
	"Notaries",
	"Mediators",
	"Arbitrator",
	"Document Writer",
}

// Categories returns the entries of the category strip under the header.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// SlideStep is how far one press of the strip's arrow scrolls it.
const SlideStep = 400

// SlideRight returns the strip's next horizontal offset. It advances by
// SlideStep, clamped to maxScrollLeft, and wraps to 0 once the end is reached.
func SlideRight(scrollLeft, maxScrollLeft float64) float64 {
	if scrollLeft < maxScrollLeft {
		return min(scrollLeft+SlideStep, maxScrollLeft)
	}
	return 0
}

// MenuItem is one entry of the account area. Items either link to a Path or
// trigger a client-side Action.
type MenuItem struct {
	Label  string `json:"label"`
	Path   string `json:"path,omitempty"`
	Action string `json:"action,omitempty"`
}

// BusinessLabel is the brand link leading every menu.
const BusinessLabel = "Justico. Business"

const (
	ActionOpenLogin = "open_login"
	ActionLogout    = "logout"
)

// MenuFor returns the account menu for the current session; nil means anonymous.
func MenuFor(r *domain.Requester) []MenuItem {
	if r == nil {
		return []MenuItem{
			{Label: BusinessLabel, Path: "/"},
			{Label: "Explore", Path: "/"},
			{Label: "Sign in", Action: ActionOpenLogin},
			{Label: "Join", Path: "/join"},
		}
	}
	return []MenuItem{
		{Label: BusinessLabel, Path: "/"},
		{Label: "Explore", Path: "/"},
		{Label: "Orders", Path: "/orders"},
		{Label: "Messages", Path: "/messages"},
		{Label: "Logout", Action: ActionLogout},
	}
}

// Scrolled reports whether the page has moved away from the top.
func Scrolled(offsetY float64) bool {
	return offsetY > 0
}

// CategoriesVisible reports whether the category strip is shown. It follows
// the header style.
func CategoriesVisible(scrolled bool, path string) bool {
	return Solid(scrolled, path)
}

// Solid reports whether the header uses its solid style: always off the home
// page, and on the home page once scrolled.
func Solid(scrolled bool, path string) bool {
	return scrolled || path != "/"
}
