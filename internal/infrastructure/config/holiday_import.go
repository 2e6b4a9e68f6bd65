package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
)

// holidaySchemaJSON validates externally supplied holiday files before any
// row reaches the store.
const holidaySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "region": {"type": "string"},
      "date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
      "name": {"type": "string", "minLength": 1}
    },
    "required": ["date", "name"],
    "additionalProperties": false
  }
}`

var holidaySchemaLoader = gojsonschema.NewStringLoader(holidaySchemaJSON)

type holidayImportEntry struct {
	Region string `json:"region"`
	Date   string `json:"date"`
	Name   string `json:"name"`
}

// ImportHolidaysJSON parses and validates a JSON holiday file and returns
// the holidays it declares.
func ImportHolidaysJSON(data []byte) ([]calendar.NonWorkingDay, error) {
	result, err := gojsonschema.Validate(holidaySchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate holiday file: %w", err)
	}
	if !result.Valid() {
		msg := "holiday file failed schema validation:"
		for _, desc := range result.Errors() {
			msg += "\n  - " + desc.String()
		}
		return nil, fmt.Errorf("%s", msg)
	}

	var entries []holidayImportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode holiday file: %w", err)
	}

	days := make([]calendar.NonWorkingDay, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", e.Date, err)
		}
		days = append(days, calendar.NonWorkingDay{
			Date:        date,
			Reason:      calendar.ReasonHoliday,
			HolidayName: e.Name,
			Region:      e.Region,
		})
	}
	return days, nil
}
