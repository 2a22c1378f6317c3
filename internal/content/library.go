package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed topic.schema.json
var topicSchemaJSON []byte

//go:embed library/*.json
var builtin embed.FS

const topicSchemaURL = "schema://learnpad/topic.json"

var topicSchema = mustCompileTopicSchema()

func mustCompileTopicSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(topicSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("content: parse topic schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(topicSchemaURL, doc); err != nil {
		panic(fmt.Sprintf("content: add topic schema: %v", err))
	}
	return c.MustCompile(topicSchemaURL)
}

// Library is an ordered, read-only set of topics.
type Library struct {
	topics []*Topic
	byID   map[string]*Topic
}

// Topics returns every topic, ordered by title.
func (l *Library) Topics() []*Topic { return l.topics }

// Topic looks up a topic by id.
func (l *Library) Topic(id string) (*Topic, bool) {
	t, ok := l.byID[id]
	return t, ok
}

// Builtin returns the sample library compiled into the binary.
func Builtin() (*Library, error) {
	sub, err := fs.Sub(builtin, "library")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// Load reads topics from dir. An empty dir, or one that does not exist,
// yields the builtin library.
func Load(dir string) (*Library, error) {
	if dir == "" {
		return Builtin()
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return Builtin()
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every *.json file at the root of fsys as a topic.
func LoadFS(fsys fs.FS) (*Library, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	lib := &Library{byID: make(map[string]*Topic)}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		t, err := ParseTopic(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		if _, dup := lib.byID[t.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate topic id %q", name, t.ID)
		}
		lib.byID[t.ID] = t
		lib.topics = append(lib.topics, t)
	}

	sort.SliceStable(lib.topics, func(i, j int) bool {
		return lib.topics[i].Title < lib.topics[j].Title
	})
	return lib, nil
}

// ParseTopic decodes and validates one topic document.
func ParseTopic(raw []byte) (*Topic, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := topicSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var t Topic
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := Check(t); err != nil {
		return nil, err
	}
	return &t, nil
}
