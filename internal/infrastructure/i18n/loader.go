package i18n

import (
	"cmp"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hashicorp/go-multierror"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.toml
var localeFS embed.FS

var unmarshalFuncs = map[string]goi18n.UnmarshalFunc{
	"toml": toml.Unmarshal,
	"yaml": yaml.Unmarshal,
	"yml":  yaml.Unmarshal,
	"json": json.Unmarshal,
}

// LoadDefaults loads the embedded locales/active.*.toml messages used by the
// command line and Discord adapters.
func LoadDefaults(c *Catalog) error {
	sub, err := fs.Sub(localeFS, "locales")
	if err != nil {
		return fmt.Errorf("i18n: embedded locales: %w", err)
	}
	return LoadFS(c, sub)
}

// LoadFS walks fsys and loads every message file into c.
//
// Files are named <group>.<locale>.<ext> where ext is toml, yaml, yml or json.
// Every key of a file is prefixed with "<group>." unless the group is
// "active" or absent ("en.toml"). Nested tables are flattened with dots.
// Failing files are skipped and reported together.
func LoadFS(c *Catalog, fsys fs.FS) error {
	var errs *multierror.Error

	walkErr := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(filePath), "."))
		if _, ok := unmarshalFuncs[ext]; !ok {
			return nil
		}

		if err := loadFile(c, fsys, filePath); err != nil {
			errs = multierror.Append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		errs = multierror.Append(errs, fmt.Errorf("i18n: walk catalog: %w", walkErr))
	}

	return errs.ErrorOrNil()
}

func loadFile(c *Catalog, fsys fs.FS, filePath string) error {
	buf, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", filePath, err)
	}

	// go-i18n derives the language from the segment before the extension;
	// the format key must be lower case to hit unmarshalFuncs.
	name := path.Base(filePath)
	ext := path.Ext(name)
	file, err := goi18n.ParseMessageFileBytes(buf, strings.TrimSuffix(name, ext)+strings.ToLower(ext), unmarshalFuncs)
	if err != nil {
		return fmt.Errorf("i18n: parse %s: %w", filePath, err)
	}
	if file.Tag == language.Und {
		return fmt.Errorf("i18n: parse %s: no locale in file name", filePath)
	}

	prefix := ""
	if group := fileGroup(name); group != "" {
		prefix = group + "."
	}

	messages := make(map[string]string, len(file.Messages))
	for _, m := range file.Messages {
		messages[prefix+m.ID] = messageTemplate(file.Tag, m)
	}
	c.AddMessages(file.Tag.String(), messages)

	c.logger.Info().
		Str("file", filePath).
		Str("locale", file.Tag.String()).
		Int("count", len(messages)).
		Msg("Loaded catalog file")
	return nil
}

// fileGroup returns the group part of "<group>.<locale>.<ext>".
func fileGroup(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return ""
	}
	group := strings.Join(parts[:len(parts)-2], ".")
	if group == "active" {
		return ""
	}
	return group
}

// messageTemplate turns a go-i18n message into a template. Messages with
// plural variants become a "|"-separated template in the plural order of tag,
// missing variants falling back to Other.
func messageTemplate(tag language.Tag, m *goi18n.Message) string {
	if m.Zero == "" && m.One == "" && m.Two == "" && m.Few == "" && m.Many == "" {
		return m.Other
	}

	forms := IntegerForms(tag)
	segments := make([]string, len(forms))
	for i, form := range forms {
		segments[i] = cmp.Or(variant(m, form), m.Other)
	}
	return strings.Join(segments, "|")
}

func variant(m *goi18n.Message, form plural.Form) string {
	switch form {
	case plural.Zero:
		return m.Zero
	case plural.One:
		return m.One
	case plural.Two:
		return m.Two
	case plural.Few:
		return m.Few
	case plural.Many:
		return m.Many
	default:
		return m.Other
	}
}
