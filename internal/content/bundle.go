package content

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Bundle is the aggregate of all resolved documents for one render pass.
// It is filled by the resolver, sealed with Publish, and read-only afterwards.
// Reading before Publish is a wiring bug, not degraded content, so the
// accessors panic instead of degrading silently.
type Bundle struct {
	menu     Menu
	projects Projects
	about    About
	contact  Contact
	icons    Icons

	mu        sync.Mutex
	raw       map[Key]json.RawMessage
	published bool
}

func newBundle() *Bundle {
	return &Bundle{raw: make(map[Key]json.RawMessage, len(Keys()))}
}

// set decodes the resolved raw document into the typed field for key.
// The resolver only hands over documents that already decoded cleanly.
// Keys resolve concurrently, so the bundle is locked for each write;
// Publish happens after the resolver's WaitGroup, so sealed reads need no lock.
func (b *Bundle) set(key Key, raw json.RawMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.raw[key] = raw
	switch key {
	case KeyMenu:
		_ = json.Unmarshal(raw, &b.menu)
	case KeyProjects:
		_ = json.Unmarshal(raw, &b.projects)
	case KeyAbout:
		_ = json.Unmarshal(raw, &b.about)
	case KeyContact:
		_ = json.Unmarshal(raw, &b.contact)
	case KeyIcons:
		_ = json.Unmarshal(raw, &b.icons)
	}
}

// Publish seals the bundle for the render pass. Accessors are only valid
// after Publish has been called.
func (b *Bundle) Publish() *Bundle {
	b.published = true
	return b
}

// Published reports whether the bundle has been sealed.
func (b *Bundle) Published() bool { return b.published }

func (b *Bundle) mustPublished(accessor string) {
	if !b.published {
		panic(fmt.Sprintf("content: Bundle.%s called before Publish (wiring bug)", accessor))
	}
}

// Menu returns the resolved menu document.
func (b *Bundle) Menu() Menu {
	b.mustPublished("Menu")
	return b.menu
}

// Projects returns the resolved projects document.
func (b *Bundle) Projects() Projects {
	b.mustPublished("Projects")
	return b.projects
}

// About returns the resolved about document.
func (b *Bundle) About() About {
	b.mustPublished("About")
	return b.about
}

// Contact returns the resolved contact document.
func (b *Bundle) Contact() Contact {
	b.mustPublished("Contact")
	return b.contact
}

// Icons returns the resolved icons document.
func (b *Bundle) Icons() Icons {
	b.mustPublished("Icons")
	return b.icons
}

// Navigation returns the menu's navigation list, a narrowed projection for
// views that only need the nav shell.
func (b *Bundle) Navigation() []NavLink {
	b.mustPublished("Navigation")
	return b.menu.Navigation
}

// ExternalLinks returns the menu's external link list.
func (b *Bundle) ExternalLinks() []ExternalLink {
	b.mustPublished("ExternalLinks")
	return b.menu.ExternalLinks
}

// Raw returns the resolved raw document for key.
func (b *Bundle) Raw(key Key) json.RawMessage {
	b.mustPublished("Raw")
	return b.raw[key]
}

// MarshalJSON serializes the full bundle as one object keyed by content key.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	if !b.published {
		return nil, fmt.Errorf("content: bundle marshaled before Publish")
	}
	out := make(map[string]json.RawMessage, len(b.raw))
	for key, raw := range b.raw {
		out[string(key)] = raw
	}
	return json.Marshal(out)
}
