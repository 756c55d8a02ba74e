package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mogaika/gxtex/gx/textureformats"
)

// FormatAliases maps lower case alias names to formats.
type FormatAliases map[string]textureformats.Format

func (c *Config) FormatAliases() (FormatAliases, error) {
	aliases := make(FormatAliases, len(c.Aliases))
	for alias, name := range c.Aliases {
		f, err := textureformats.ParseFormat(name)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid alias %q", alias)
		}
		aliases[strings.ToLower(alias)] = f
	}
	return aliases, nil
}

// ResolveFormat accepts a format name, a configured alias or
// a gx format id written as 0x-prefixed hex.
func (c *Config) ResolveFormat(name string) (textureformats.Format, error) {
	aliases, err := c.FormatAliases()
	if err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)
	if f, ok := aliases[strings.ToLower(name)]; ok {
		return f, nil
	}
	if lower := strings.ToLower(name); strings.HasPrefix(lower, "0x") {
		id, err := strconv.ParseUint(lower[2:], 16, 8)
		if err != nil {
			return 0, errors.Wrapf(textureformats.ErrUnsupportedFormat, "Invalid gx id %q", name)
		}
		return textureformats.FormatFromGXID(uint8(id))
	}
	return textureformats.ParseFormat(name)
}
