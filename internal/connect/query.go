package connect

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the hosted connect flow loaded into the primary surface.
const DefaultBaseURL = "https://connect.fastenhealth.com/v1/connect"

// Fixed trailer parameters. The remote content opens its own websocket when
// connect-mode is websocket; the mode tag tells it which native embedding it
// is running inside.
const (
	connectModeParam = "connect-mode=websocket"
	embedModeParam   = "mode=react-native"
)

// BuildConnectURL builds the URL the primary surface loads. Optional
// parameters are appended only when present, search-sort-by-opts is
// base64-encoded, and the connect-mode/mode trailer always comes last.
func BuildConnectURL(base string, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	params := []string{
		encodeParam("public-id", cfg.PublicID),
	}
	params = appendIfPresent(params, "external-id", cfg.ExternalID)
	params = appendIfPresent(params, "reconnect-org-connection-id", cfg.ReconnectOrgConnectionID)
	params = appendIfPresent(params, "brand-id", cfg.BrandID)
	params = appendIfPresent(params, "portal-id", cfg.PortalID)
	params = appendIfPresent(params, "endpoint-id", cfg.EndpointID)

	if cfg.SearchMode {
		params = append(params, encodeParam("search-mode", "true"))
	}
	if len(cfg.SearchSortByOpts) > 0 {
		opts, err := encodeSortByOpts(cfg.SearchSortByOpts)
		if err != nil {
			return "", err
		}
		params = append(params, encodeParam("search-sort-by-opts", opts))
	}

	if cfg.TEFCAMode {
		params = append(params, encodeParam("tefca-mode", "true"))
		params = appendIfPresent(params, "tefca-purpose-of-use", cfg.TEFCAPurposeOfUse)
	}

	if len(cfg.EventTypes) > 0 {
		params = append(params, encodeParam("event-types", strings.Join(cfg.EventTypes, ",")))
	}
	if cfg.Debug {
		params = append(params, encodeParam("debug", "true"))
	}

	params = append(params, connectModeParam, embedModeParam)

	u.RawQuery = strings.Join(params, "&")
	return u.String(), nil
}

// encodeSortByOpts serializes the sort options as a JSON array and
// base64-encodes the result, matching what the remote flow decodes.
func encodeSortByOpts(opts []string) (string, error) {
	b, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("marshal search-sort-by-opts: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func encodeParam(key, value string) string {
	return key + "=" + url.QueryEscape(value)
}

func appendIfPresent(params []string, key, value string) []string {
	if value == "" {
		return params
	}
	return append(params, encodeParam(key, value))
}
