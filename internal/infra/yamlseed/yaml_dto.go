package yamlseed

type YAMLSeed struct {
	Books   []YAMLBook   `yaml:"books"`
	Patrons []YAMLPatron `yaml:"patrons"`
}

type YAMLBook struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	ISBN     string `yaml:"isbn"`
	Quantity *int   `yaml:"quantity"`
}

type YAMLPatron struct {
	Name    string `yaml:"name"`
	ID      string `yaml:"id"`
	Contact string `yaml:"contact"`
}
