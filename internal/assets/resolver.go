package assets

import "errors"

// AssetResolver reads from an override directory first and falls back to
// the embedded assets when a style or template is missing there.
type AssetResolver struct {
	override AssetLoader // nil without --assets
	embedded AssetLoader
}

// NewAssetResolver returns a resolver over the embedded assets, layered
// under dir when dir is not empty.
func NewAssetResolver(dir string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if dir == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(dir)
	if err != nil {
		return nil, err
	}
	r.override = fsLoader
	return r, nil
}

// LoadStyle implements AssetLoader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.load(AssetLoader.LoadStyle, name)
}

// LoadTemplate implements AssetLoader.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.load(AssetLoader.LoadTemplate, name)
}

// load falls back only on not-found errors; invalid names and read
// failures from the override directory are returned.
func (r *AssetResolver) load(get func(AssetLoader, string) (string, error), name string) (string, error) {
	if r.override != nil {
		content, err := get(r.override, name)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return get(r.embedded, name)
}

// HasCustomLoader reports whether an override directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.override != nil
}

var _ AssetLoader = (*AssetResolver)(nil)
