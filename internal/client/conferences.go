package client

import (
	"context"

	"cfbd_v1/ingestion/internal/table"
)

var conferencesEndpoint = endpoint{path: "/conferences", static: true}

// Conferences fetches every conference known to the API
func (c *Client) Conferences(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, conferencesEndpoint, nil, flattenConferences)
}

func flattenConferences(body []byte) (*table.Table, error) {
	confs, err := table.ParseObjects(body)
	if err != nil {
		return nil, err
	}

	t := table.New(
		"conference_id", "conference_name", "conference_short_name",
		"conference_abbreviation", "ncaa_classification",
	)
	for _, conf := range confs {
		t.AppendRow(table.Row{
			"conference_id":           conf.Get("id"),
			"conference_name":         conf.Get("name"),
			"conference_short_name":   firstOf(conf, "short_name", "shortName"),
			"conference_abbreviation": conf.Get("abbreviation"),
			"ncaa_classification":     conf.Get("classification"),
		})
	}
	return t, nil
}

// firstOf returns the first present key; the API has used both snake and camel case
func firstOf(o *table.Object, keys ...string) any {
	for _, k := range keys {
		if o.Has(k) {
			return o.Get(k)
		}
	}
	return nil
}
