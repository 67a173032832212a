// Package manifest reads declaration manifests, YAML or TOML files describing
// one type in terms of member signatures, and turns them into decl trees.
//
//	type: public sealed class Calculator
//	namespace: Demo
//	members:
//	  - signature: public int Add(int a, int b)
//	    expression: a + b
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

// Manifest describes one type. Nested manifests describe nested types.
type Manifest struct {
	Type      string     `yaml:"type" toml:"type"`
	Namespace string     `yaml:"namespace,omitempty" toml:"namespace"`
	Summary   string     `yaml:"summary,omitempty" toml:"summary"`
	Region    string     `yaml:"region,omitempty" toml:"region"`
	Guid      string     `yaml:"guid,omitempty" toml:"guid"` // a GUID, or "new"
	Imports   []string   `yaml:"imports,omitempty" toml:"imports"`
	Members   []Member   `yaml:"members,omitempty" toml:"members"`
	Nested    []Manifest `yaml:"nested,omitempty" toml:"nested"`
	Values    []string   `yaml:"values,omitempty" toml:"values"` // enum values, "Name" or "Name = expr"
}

// Member is one member signature plus the parts a one-line signature cannot carry
type Member struct {
	Signature  string              `yaml:"signature" toml:"signature"`
	Summary    string              `yaml:"summary,omitempty" toml:"summary"`
	Region     string              `yaml:"region,omitempty" toml:"region"`
	Imports    []string            `yaml:"imports,omitempty" toml:"imports"`
	Body       string              `yaml:"body,omitempty" toml:"body"`
	Expression string              `yaml:"expression,omitempty" toml:"expression"`
	Guards     map[string][]string `yaml:"guards,omitempty" toml:"guards"` // parameter -> guard names
	Assign     map[string]string   `yaml:"assign,omitempty" toml:"assign"` // parameter -> member
}

// Load reads a manifest, choosing the decoder by file extension. Unknown keys
// are rejected in both formats.
func Load(path string) (Manifest, error) {
	var (
		m   Manifest
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = loadYAML(path)
	case ".toml":
		m, err = loadTOML(path)
	default:
		return Manifest{}, cserrors.Newf(cserrors.ManifestErrorCode, "unsupported manifest format %q", filepath.Ext(path)).
			WithContext("path", path).
			WithSuggestion("use a .yaml, .yml or .toml file")
	}
	if err != nil {
		return Manifest{}, err
	}
	if err := m.check(); err != nil {
		return Manifest{}, cserrors.WrapManifestError(path, err)
	}
	return m, nil
}

func loadYAML(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, cserrors.WrapFileSystemError("open", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, cserrors.WrapManifestError(path, err)
	}
	return m, nil
}

func loadTOML(path string) (Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, cserrors.WrapFileSystemError("open", path, err)
		}
		return Manifest{}, cserrors.WrapManifestError(path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Manifest{}, cserrors.Newf(cserrors.ManifestErrorCode, "unknown keys in manifest '%s': %s", path, strings.Join(keys, ", ")).
			WithContext("path", path)
	}
	return m, nil
}

// check reports structural problems that do not need the signature parser
func (m Manifest) check() error {
	if strings.TrimSpace(m.Type) == "" {
		return cserrors.New(cserrors.ManifestErrorCode, "manifest has no type").
			WithSuggestion("set 'type' to a declaration head such as 'public class Foo'")
	}
	for i, mem := range m.Members {
		if strings.TrimSpace(mem.Signature) == "" {
			return cserrors.Newf(cserrors.ManifestErrorCode, "member %d of %s has no signature", i, m.Type)
		}
	}
	for _, n := range m.Nested {
		if err := n.check(); err != nil {
			return err
		}
	}
	return nil
}
