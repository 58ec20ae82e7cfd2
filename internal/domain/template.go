package domain

// Template describes one visual portfolio template a user can select.
// Rendering is done by the frontend; the backend only stores the identifier.
type Template struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	PreviewURL  string   `json:"preview_url,omitempty" yaml:"preview_url"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
	Default     bool     `json:"default,omitempty" yaml:"default"`
}

type TemplateCatalog interface {
	List() []Template
	Get(id string) (Template, bool)
	Default() Template
}
