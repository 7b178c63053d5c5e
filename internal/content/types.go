// Package content defines the portfolio content documents and the tiered
// resolution chain that guarantees every document is always renderable.
package content

import "fmt"

// Key identifies one content document.
type Key string

// The full set of content keys. Exactly one document exists per key.
const (
	KeyMenu     Key = "menu"
	KeyProjects Key = "projects"
	KeyAbout    Key = "about"
	KeyContact  Key = "contact"
	KeyIcons    Key = "icons"
)

// Keys returns all content keys in stable order.
func Keys() []Key {
	return []Key{KeyMenu, KeyProjects, KeyAbout, KeyContact, KeyIcons}
}

// ParseKey converts a string into a Key.
func ParseKey(s string) (Key, error) {
	switch Key(s) {
	case KeyMenu, KeyProjects, KeyAbout, KeyContact, KeyIcons:
		return Key(s), nil
	default:
		return "", fmt.Errorf("unknown content key %q", s)
	}
}

// SnapshotFilename returns the bundled snapshot filename for a key.
// Icons have no snapshot file; the empty default set stands in for it.
func (k Key) SnapshotFilename() string {
	return string(k) + "-page.json"
}

// PageHeader is the header block shared by all content pages.
type PageHeader struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
}

// NavLink is one entry in the site navigation.
type NavLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

// ExternalLink is an outbound link (GitHub, LinkedIn, resume download).
type ExternalLink struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Download bool   `json:"download,omitempty"`
}

// Profile is the site owner's identity block.
type Profile struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Image string `json:"image"` // object storage URL or local path
}

// Menu is the navigation shell document.
type Menu struct {
	Profile       Profile        `json:"profile"`
	Navigation    []NavLink      `json:"navigation"`
	ExternalLinks []ExternalLink `json:"externalLinks"`
	Footer        Footer         `json:"footer"`
}

// Footer holds the menu footer block.
type Footer struct {
	Copyright string `json:"copyright"`
}

// TechStack names one technology used by a project.
type TechStack struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ProjectLink is an outbound link attached to a project.
type ProjectLink struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Link  string `json:"link"`
}

// ProjectMedia references the media shown for a project.
type ProjectMedia struct {
	MediaType string `json:"mediaType"` // image, video or iframe
	MediaSrc  string `json:"mediaSrc"`  // object storage URL or local path
}

// Project is one portfolio project record.
type Project struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	ProjectLinks []ProjectLink `json:"projectLinks"`
	ProjectMedia ProjectMedia  `json:"projectMedia"`
	TechStack    []TechStack   `json:"techStack"`
}

// Projects is the projects page document.
type Projects struct {
	PageHeader PageHeader `json:"pageHeader"`
	Projects   []Project  `json:"projects"`
}

// AboutSection is a heading plus free text.
type AboutSection struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// AboutSkills is the skills block of the about page.
type AboutSkills struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// About is the about page document.
type About struct {
	PageHeader PageHeader   `json:"pageHeader"`
	Intro      AboutSection `json:"intro"`
	Skills     AboutSkills  `json:"skills"`
	Contact    AboutSection `json:"contact"`
}

// ContactSection is one block of the contact page.
type ContactSection struct {
	Heading     string `json:"heading"`
	Description string `json:"description,omitempty"`
}

// ContactSections groups the contact page blocks.
type ContactSections struct {
	Email   ContactSection `json:"email"`
	Connect ContactSection `json:"connect"`
}

// Contact is the contact page document.
type Contact struct {
	PageHeader PageHeader      `json:"pageHeader"`
	Sections   ContactSections `json:"sections"`
}

// IconDefinition maps an icon name to a remotely hosted asset.
type IconDefinition struct {
	Name    string `json:"name"`
	Variant string `json:"variant"` // ui or tech
	URL     string `json:"url"`
}

// Icons is the dynamic icon override document. An empty list is a valid
// document: consumers fall back to their static icon set.
type Icons struct {
	Icons []IconDefinition `json:"icons"`
}

// newDocument returns a pointer to a zero document of the right type for key.
func newDocument(key Key) any {
	switch key {
	case KeyMenu:
		return &Menu{}
	case KeyProjects:
		return &Projects{}
	case KeyAbout:
		return &About{}
	case KeyContact:
		return &Contact{}
	case KeyIcons:
		return &Icons{}
	default:
		return &map[string]any{}
	}
}
