package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// OthersCategory is the category assigned to files whose extension is not
// declared in any configured category.
const OthersCategory = "Others"

// Category is a named bucket of file extensions.
type Category struct {
	Name       string
	Extensions []string
}

// Categories keeps the declaration order of the file_types table, which a
// plain map would lose.
type Categories []Category

// Overlap describes one extension declared by more than one category.
type Overlap struct {
	Extension string
	First     string
	Second    string
}

func (o Overlap) String() string {
	return fmt.Sprintf("%q is declared in both %q and %q", o.Extension, o.First, o.Second)
}

func (c *Categories) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ms yaml.MapSlice
	if err := unmarshal(&ms); err != nil {
		return err
	}

	out := make(Categories, 0, len(ms))
	for _, item := range ms {
		name, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("file_types: category name must be a string, got %v", item.Key)
		}
		var exts []string
		switch v := item.Value.(type) {
		case nil:
		case []interface{}:
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return fmt.Errorf("file_types.%s: extension must be a string, got %v", name, e)
				}
				exts = append(exts, s)
			}
		default:
			return fmt.Errorf("file_types.%s: expected a list of extensions", name)
		}
		out = append(out, Category{Name: name, Extensions: exts})
	}
	*c = out
	return nil
}

func (c Categories) MarshalYAML() (interface{}, error) {
	ms := make(yaml.MapSlice, 0, len(c))
	for _, cat := range c {
		ms = append(ms, yaml.MapItem{Key: cat.Name, Value: cat.Extensions})
	}
	return ms, nil
}

func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		exts := cat.Extensions
		if exts == nil {
			exts = []string{}
		}
		val, err := json.Marshal(exts)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Names returns the category names in declaration order.
func (c Categories) Names() []string {
	names := make([]string, 0, len(c))
	for _, cat := range c {
		names = append(names, cat.Name)
	}
	return names
}

// Overlaps reports every extension claimed by two categories. The first
// declared owner is reported as First.
func (c Categories) Overlaps() []Overlap {
	var overlaps []Overlap
	owner := make(map[string]string)
	for _, cat := range c {
		for _, ext := range cat.Extensions {
			ext = NormalizeExtension(ext)
			if prev, ok := owner[ext]; ok {
				if prev != cat.Name {
					overlaps = append(overlaps, Overlap{Extension: ext, First: prev, Second: cat.Name})
				}
				continue
			}
			owner[ext] = cat.Name
		}
	}
	return overlaps
}

func (c Categories) normalize() Categories {
	out := make(Categories, 0, len(c))
	for _, cat := range c {
		exts := make([]string, 0, len(cat.Extensions))
		seen := make(map[string]bool)
		for _, ext := range cat.Extensions {
			ext = NormalizeExtension(ext)
			if ext == "" || seen[ext] {
				continue
			}
			seen[ext] = true
			exts = append(exts, ext)
		}
		out = append(out, Category{Name: strings.TrimSpace(cat.Name), Extensions: exts})
	}
	return out
}

// NormalizeExtension lowercases ext and makes sure it carries a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
