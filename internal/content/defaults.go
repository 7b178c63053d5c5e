package content

// Hardcoded default documents, the final resolution tier. These are literal
// constants and always constructible, so content pages can render even with
// the remote store unreachable and the local snapshot missing.

// DefaultMenu returns the built-in menu document.
func DefaultMenu() Menu {
	return Menu{
		Profile: Profile{
			Name:  "Jacques Hebert",
			Title: "Software Developer",
			Image: "/profile.svg",
		},
		Navigation: []NavLink{
			{Title: "About", Path: "/about", Icon: "user"},
			{Title: "Projects", Path: "/projects", Icon: "folder"},
			{Title: "Contact", Path: "/contact", Icon: "mail"},
		},
		ExternalLinks: []ExternalLink{
			{Title: "GitHub", URL: "https://github.com/jaq-h", Icon: "github"},
			{Title: "LinkedIn", URL: "https://www.linkedin.com/in/jaq-h/", Icon: "linkedin"},
			{Title: "Resume", URL: "/resume.pdf", Icon: "document", Download: true},
		},
		Footer: Footer{Copyright: "© 2024 Jacques Hebert"},
	}
}

// DefaultProjects returns the built-in projects document.
// The project list is intentionally empty; the page renders its header only.
func DefaultProjects() Projects {
	return Projects{
		PageHeader: PageHeader{
			Title:    "Technical Projects",
			Subtitle: "A collection of my work showcasing various technologies and problem-solving approaches",
			Icon:     "folder",
		},
		Projects: []Project{},
	}
}

// DefaultAbout returns the built-in about document.
func DefaultAbout() About {
	return About{
		PageHeader: PageHeader{
			Title:    "About Me",
			Subtitle: "Software developer passionate about building modern web applications",
			Icon:     "user",
		},
		Intro: AboutSection{
			Heading: "Hello, I'm Jacques Hebert",
			Text: "I'm a software developer passionate about building modern web applications " +
				"and exploring new technologies. I enjoy working with TypeScript, React, Rust, " +
				"and creating tools that solve real problems.",
		},
		Skills: AboutSkills{
			Heading: "Skills",
			Items: []string{
				"TypeScript", "JavaScript", "React", "Next.js", "Rust",
				"Tauri", "Node.js", "PostgreSQL", "TailwindCSS", "Git",
			},
		},
		Contact: AboutSection{
			Heading: "Get In Touch",
			Text: "Feel free to reach out through GitHub or LinkedIn. I'm always interested " +
				"in collaborating on interesting projects or discussing new opportunities.",
		},
	}
}

// DefaultContact returns the built-in contact document.
func DefaultContact() Contact {
	return Contact{
		PageHeader: PageHeader{
			Title:    "Contact",
			Subtitle: "Get in touch — I'm always open to new opportunities and collaborations",
			Icon:     "mail",
		},
		Sections: ContactSections{
			Email: ContactSection{
				Heading: "Get My Email Address",
				Description: "To protect against spam and bots, please verify you're human " +
					"to reveal my email address.",
			},
			Connect: ContactSection{Heading: "Other Ways to Connect"},
		},
	}
}

// DefaultIcons returns the built-in icons document: no dynamic overrides,
// consumers use their static icon set.
func DefaultIcons() Icons {
	return Icons{Icons: []IconDefinition{}}
}

// DefaultDocument returns the default document for a key.
func DefaultDocument(key Key) any {
	switch key {
	case KeyMenu:
		return DefaultMenu()
	case KeyProjects:
		return DefaultProjects()
	case KeyAbout:
		return DefaultAbout()
	case KeyContact:
		return DefaultContact()
	case KeyIcons:
		return DefaultIcons()
	default:
		return map[string]any{}
	}
}
