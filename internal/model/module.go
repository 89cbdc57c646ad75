package model

// Module is an educational content unit. Modules are read-only from the
// app's perspective; authoring happens out of band.
type Module struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Sections    []ModuleSection `json:"sections,omitempty"`
}

// ModuleSection is one titled block of module content.
type ModuleSection struct {
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Subsections []ModuleSubsection `json:"subsections,omitempty"`
}

// ModuleSubsection is a nested block inside a section.
type ModuleSubsection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
