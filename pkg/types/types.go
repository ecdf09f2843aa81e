package types

type Config struct {
	Storage  StorageConfig `yaml:"storage"`
	DumpPath string        `yaml:"dumpPath"`
	LogLevel string        `yaml:"logLevel"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Top-level record keys, in the order NewRecord writes them.
const (
	KeyTitle        = "title"
	KeyAuthors      = "authors"
	KeyAffiliations = "affiliations"
	KeyAbstract     = "abstract"
	KeyMethods      = "methods"
	KeyDatasets     = "datasets"
	KeyMetrics      = "metrics"
)

// Sub-entry name keys.
const (
	KeyModelName = "model_name"
	KeyName      = "name"
)

// Record is one manuscript entry. It holds whatever keys the store gave it,
// known or not, and writes them back as read. Its identity inside a store is
// its position in the list.
type Record struct {
	Object
}

// NewRecord builds a record with every top-level key present and empty
// methods, datasets and metrics.
func NewRecord(title string, authors, affiliations []string, abstract string) Record {
	r := Record{NewObject()}
	r.SetString(KeyTitle, title)
	r.SetStrings(KeyAuthors, authors)
	r.SetStrings(KeyAffiliations, affiliations)
	r.SetString(KeyAbstract, abstract)
	r.SetObjects(KeyMethods, nil)
	r.SetObjects(KeyDatasets, nil)
	r.SetObjects(KeyMetrics, nil)

	return r
}

func NewMethod(modelName string) Object {
	o := NewObject()
	o.SetString(KeyModelName, modelName)
	return o
}

func NewDataset(name string) Object {
	o := NewObject()
	o.SetString(KeyName, name)
	return o
}

func NewMetric(name string) Object {
	o := NewObject()
	o.SetString(KeyName, name)
	return o
}

func (r Record) Title() string {
	return r.StringValue(KeyTitle)
}

func (r Record) Authors() []string {
	return r.StringList(KeyAuthors)
}

func (r Record) Affiliations() []string {
	return r.StringList(KeyAffiliations)
}

func (r Record) Abstract() string {
	return r.StringValue(KeyAbstract)
}

func (r Record) Methods() []Object {
	return r.ObjectList(KeyMethods)
}

func (r Record) Datasets() []Object {
	return r.ObjectList(KeyDatasets)
}

func (r Record) Metrics() []Object {
	return r.ObjectList(KeyMetrics)
}

func (r Record) Clone() Record {
	return Record{r.Object.Clone()}
}

func hasName(entries []Object, key, name string) bool {
	for _, e := range entries {
		if e.StringValue(key) == name {
			return true
		}
	}

	return false
}

func (r Record) HasModel(name string) bool {
	return hasName(r.Methods(), KeyModelName, name)
}

func (r Record) HasDataset(name string) bool {
	return hasName(r.Datasets(), KeyName, name)
}

func (r Record) HasMetric(name string) bool {
	return hasName(r.Metrics(), KeyName, name)
}

// RecordPatch is a shallow update: every key it carries replaces the
// record's value for that key wholesale. Keys it does not carry are left
// alone.
type RecordPatch struct {
	Object
}

func (p RecordPatch) IsEmpty() bool {
	return p.Len() == 0
}

// Apply returns a patched copy of r. r itself is not modified.
func (p RecordPatch) Apply(r Record) Record {
	out := r.Clone()
	for _, key := range p.keys {
		out.SetRaw(key, p.values[key])
	}

	return out
}

// Merge lays other on top of p. Keys set in other win.
func (p RecordPatch) Merge(other RecordPatch) RecordPatch {
	out := RecordPatch{p.Object.Clone()}
	for _, key := range other.keys {
		out.SetRaw(key, other.values[key])
	}

	return out
}

// Fields holds the distinct sub-entry names across a store.
type Fields struct {
	Models   []string `json:"models"`
	Datasets []string `json:"datasets"`
	Metrics  []string `json:"metrics"`
}

// Query is an exact-match filter. Empty values match everything.
type Query struct {
	Model   string
	Dataset string
	Metric  string
}
