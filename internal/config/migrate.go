package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

// v1 field names and their v2 replacements.
var renamedFields = [][2]string{
	{"autoCopyFiles", "copyFiles"},
	{"staleDays", "cleanThreshold"},
}

var hookFields = []string{"hooks.postCreate", "hooks.preRemove", "hooks.postRemove"}

// Migrate upgrades a raw config document to CurrentVersion.
// Comments and trailing commas are stripped first. A document that already
// carries CurrentVersion (or newer) is returned with only that cleanup.
//
// v1 → v2:
//   - autoCopyFiles is renamed to copyFiles, staleDays to cleanThreshold
//   - lastAutoCleanTime as an RFC 3339 string becomes epoch milliseconds;
//     an unparseable string is dropped
//   - a hook given as a single string becomes a one-element list
func Migrate(data []byte) ([]byte, error) {
	data = jsonc.ToJSON(data)
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, errors.New("config must be a JSON object")
	}
	if gjson.GetBytes(data, "version").Int() >= CurrentVersion {
		return data, nil
	}

	var err error
	for _, f := range renamedFields {
		from, to := f[0], f[1]
		old := gjson.GetBytes(data, from)
		if !old.Exists() {
			continue
		}
		if !gjson.GetBytes(data, to).Exists() {
			if data, err = sjson.SetRawBytes(data, to, []byte(old.Raw)); err != nil {
				return nil, fmt.Errorf("migrate %s: %w", from, err)
			}
		}
		if data, err = sjson.DeleteBytes(data, from); err != nil {
			return nil, fmt.Errorf("migrate %s: %w", from, err)
		}
	}

	if ts := gjson.GetBytes(data, "lastAutoCleanTime"); ts.Type == gjson.String {
		data, err = migrateTimestamp(data, ts.Str)
		if err != nil {
			return nil, fmt.Errorf("migrate lastAutoCleanTime: %w", err)
		}
	}

	for _, path := range hookFields {
		if h := gjson.GetBytes(data, path); h.Type == gjson.String {
			if data, err = sjson.SetBytes(data, path, []string{h.Str}); err != nil {
				return nil, fmt.Errorf("migrate %s: %w", path, err)
			}
		}
	}

	if data, err = sjson.SetBytes(data, "version", CurrentVersion); err != nil {
		return nil, err
	}
	return data, nil
}

func migrateTimestamp(data []byte, value string) ([]byte, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return sjson.DeleteBytes(data, "lastAutoCleanTime")
	}
	return sjson.SetBytes(data, "lastAutoCleanTime", t.UnixMilli())
}
