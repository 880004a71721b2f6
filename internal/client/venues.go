package client

import "context"

var venuesEndpoint = endpoint{
	path:   "/venues",
	static: true,
	rename: map[string]string{
		"id":               "venue_id",
		"name":             "venue_name",
		"capacity":         "venue_capacity",
		"grass":            "is_grass",
		"city":             "venue_city",
		"state":            "venue_state",
		"zip":              "venue_zip_code",
		"country_code":     "venue_country_code",
		"countryCode":      "venue_country_code",
		"elevation":        "venue_elevation",
		"dome":             "is_dome",
		"location.x":       "venue_location_x",
		"location.y":       "venue_location_y",
		"year_constructed": "venue_year_constructed",
		"constructionYear": "venue_year_constructed",
	},
}

// Venues fetches every stadium known to the API
func (c *Client) Venues(ctx context.Context) (*Response, error) {
	return c.fetch(ctx, venuesEndpoint, nil, nil)
}
