package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and loads every "<domain>.<locale>.{yaml,yml,json}" file
// matching locale into a new catalog. Nested message trees are flattened with
// dots ("property.title"). A nil fsys yields an empty catalog.
func LoadFS(fsys fs.FS, locale string) (*Catalog, error) {
	catalog := NewCatalog(locale)
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		domain, fileLocale, ok := splitCatalogName(path.Base(p))
		if !ok || fileLocale != catalog.locale {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", p, err)
		}
		messages, err := parseMessages(data, p)
		if err != nil {
			return err
		}
		catalog.Add(domain, messages)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func splitCatalogName(name string) (domain, locale string, ok bool) {
	ext := path.Ext(name)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
	default:
		return "", "", false
	}
	stem := strings.TrimSuffix(name, ext)
	idx := strings.LastIndex(stem, ".")
	if idx <= 0 || idx == len(stem)-1 {
		return "", "", false
	}
	return stem[:idx], stem[idx+1:], true
}

func parseMessages(data []byte, source string) (map[string]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]string{}, nil
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		tree = nil
		if yamlErr := yaml.Unmarshal(data, &tree); yamlErr != nil {
			return nil, fmt.Errorf("i18n: parse %s: invalid JSON or YAML", source)
		}
	}

	out := make(map[string]string)
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch value := tree[key].(type) {
		case map[string]any:
			flatten(full, value, out)
		case nil:
		default:
			out[full] = fmt.Sprint(value)
		}
	}
}
