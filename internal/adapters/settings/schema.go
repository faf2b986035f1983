package settings

// schema is the shape shared by the settings file and the environment
// layer. yaml.Unmarshal fills it from .pindown.yaml first, then
// env.Parse overrides the fields whose PINDOWN_* variable is set.
type schema struct {
	Manifest  string `yaml:"manifest"   env:"PINDOWN_MANIFEST"`
	IndexURL  string `yaml:"index_url"  env:"PINDOWN_INDEX_URL"`
	IndexFile string `yaml:"index_file" env:"PINDOWN_INDEX_FILE"`
	CacheDir  string `yaml:"cache_dir"  env:"PINDOWN_CACHE_DIR"`
	Strategy  string `yaml:"strategy"   env:"PINDOWN_STRATEGY"`
	Offline   bool   `yaml:"offline"    env:"PINDOWN_OFFLINE"`
}
