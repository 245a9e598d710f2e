package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys lists the settings exposed by `treehouse config get/set`, in display order.
var Keys = []string{
	"defaultBranch",
	"worktreeFormat",
	"copyFiles",
	"hooks.postCreate",
	"hooks.preRemove",
	"hooks.postRemove",
	"autoClean",
	"cleanThreshold",
}

// Get returns the string form of a setting. Lists are comma-separated.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "defaultBranch":
		return c.DefaultBranch, nil
	case "worktreeFormat":
		return c.Format(), nil
	case "copyFiles":
		return strings.Join(c.CopyFiles, ","), nil
	case "hooks.postCreate":
		return strings.Join(c.Hooks.PostCreate, ","), nil
	case "hooks.preRemove":
		return strings.Join(c.Hooks.PreRemove, ","), nil
	case "hooks.postRemove":
		return strings.Join(c.Hooks.PostRemove, ","), nil
	case "autoClean":
		return strconv.FormatBool(c.AutoClean), nil
	case "cleanThreshold":
		return strconv.Itoa(c.CleanThreshold), nil
	}
	return "", unknownKey(key)
}

// Set parses value and assigns it to a setting. Lists are comma-separated;
// an empty value clears the list.
func (c *Config) Set(key, value string) error {
	switch key {
	case "defaultBranch":
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("defaultBranch must not be empty")
		}
		c.DefaultBranch = value
	case "worktreeFormat":
		if err := ValidateFormat(value); err != nil {
			return err
		}
		c.WorktreeFormat = value
	case "copyFiles":
		list := splitList(value)
		for i, pat := range list {
			if err := validateCopyPattern(pat); err != nil {
				return fmt.Errorf("copyFiles[%d]: %w", i, err)
			}
		}
		c.CopyFiles = list
	case "hooks.postCreate":
		c.Hooks.PostCreate = splitList(value)
	case "hooks.preRemove":
		c.Hooks.PreRemove = splitList(value)
	case "hooks.postRemove":
		c.Hooks.PostRemove = splitList(value)
	case "autoClean":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid autoClean %q: must be true or false", value)
		}
		c.AutoClean = b
	case "cleanThreshold":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid cleanThreshold %q: must be a number of days", value)
		}
		if n < 0 {
			return fmt.Errorf("cleanThreshold must be >= 0, got %d", n)
		}
		c.CleanThreshold = n
	default:
		return unknownKey(key)
	}
	return nil
}

func splitList(value string) []string {
	list := []string{}
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown key %q: must be %s", key, formatOptions(Keys))
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
