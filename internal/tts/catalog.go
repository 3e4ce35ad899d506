package tts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogVoice describes one provider voice known to the catalog.
type CatalogVoice struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
	Gender   Gender `yaml:"gender"`

	// Premium marks higher-quality (WaveNet) voices, preferred by Pick.
	Premium bool `yaml:"premium"`
}

// Catalog maps language and gender to concrete voice names.
type Catalog struct {
	voices []CatalogVoice
}

// defaultVoices is the built-in voice table. Premium (WaveNet) entries
// come first per locale so Pick prefers them.
var defaultVoices = []CatalogVoice{
	{Name: "pt-BR-Wavenet-A", Language: "pt-BR", Gender: GenderFemale, Premium: true},
	{Name: "pt-BR-Wavenet-B", Language: "pt-BR", Gender: GenderMale, Premium: true},
	{Name: "pt-BR-Standard-A", Language: "pt-BR", Gender: GenderFemale},
	{Name: "pt-BR-Standard-B", Language: "pt-BR", Gender: GenderMale},

	{Name: "pt-PT-Wavenet-A", Language: "pt-PT", Gender: GenderFemale, Premium: true},
	{Name: "pt-PT-Wavenet-B", Language: "pt-PT", Gender: GenderMale, Premium: true},
	{Name: "pt-PT-Standard-A", Language: "pt-PT", Gender: GenderFemale},

	{Name: "en-US-Wavenet-C", Language: "en-US", Gender: GenderFemale, Premium: true},
	{Name: "en-US-Wavenet-D", Language: "en-US", Gender: GenderMale, Premium: true},
	{Name: "en-US-Standard-C", Language: "en-US", Gender: GenderFemale},
	{Name: "en-US-Standard-D", Language: "en-US", Gender: GenderMale},

	{Name: "en-GB-Wavenet-A", Language: "en-GB", Gender: GenderFemale, Premium: true},
	{Name: "en-GB-Wavenet-B", Language: "en-GB", Gender: GenderMale, Premium: true},

	{Name: "es-ES-Wavenet-C", Language: "es-ES", Gender: GenderFemale, Premium: true},
	{Name: "es-ES-Wavenet-B", Language: "es-ES", Gender: GenderMale, Premium: true},
	{Name: "es-ES-Standard-A", Language: "es-ES", Gender: GenderFemale},

	{Name: "fr-FR-Wavenet-C", Language: "fr-FR", Gender: GenderFemale, Premium: true},
	{Name: "fr-FR-Wavenet-B", Language: "fr-FR", Gender: GenderMale, Premium: true},

	{Name: "de-DE-Wavenet-C", Language: "de-DE", Gender: GenderFemale, Premium: true},
	{Name: "de-DE-Wavenet-B", Language: "de-DE", Gender: GenderMale, Premium: true},

	{Name: "it-IT-Wavenet-A", Language: "it-IT", Gender: GenderFemale, Premium: true},
	{Name: "it-IT-Wavenet-C", Language: "it-IT", Gender: GenderMale, Premium: true},
}

// DefaultCatalog returns the built-in voice catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{voices: defaultVoices}
}

// LoadCatalog reads a voice catalog from a YAML file. The file holds a
// list of voices under a top-level "voices" key.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from a user flag
	if err != nil {
		return nil, fmt.Errorf("read voice catalog: %w", err)
	}

	var doc struct {
		Voices []CatalogVoice `yaml:"voices"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse voice catalog: %w", err)
	}
	if len(doc.Voices) == 0 {
		return nil, fmt.Errorf("voice catalog %s holds no voices", path)
	}
	return &Catalog{voices: doc.Voices}, nil
}

// Pick selects a voice name for the language and gender, preferring
// premium voices. Returns ErrNoVoice when nothing matches.
func (c *Catalog) Pick(language string, gender Gender) (string, error) {
	var fallback string
	for _, v := range c.voices {
		if v.Language != language || v.Gender != gender {
			continue
		}
		if v.Premium {
			return v.Name, nil
		}
		if fallback == "" {
			fallback = v.Name
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w for %s/%s", ErrNoVoice, language, gender)
}

// Voices returns catalog entries for a language, all genders.
func (c *Catalog) Voices(language string) []CatalogVoice {
	var out []CatalogVoice
	for _, v := range c.voices {
		if language == "" || v.Language == language {
			out = append(out, v)
		}
	}
	return out
}
